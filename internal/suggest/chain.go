// Package suggest produces context suggestions through an ordered chain of
// sources: the live ranking sidecar, persisted pressure scores, and a raw
// recency fallback. The chain never errors; callers always get a suggestion
// annotated with the tier that produced it.
package suggest

import "log"

// errNoData marks a tier that ran cleanly but had nothing to offer, as
// opposed to a tier that failed. Both advance the chain; the distinction
// only matters for logging.
type noDataError struct{}

func (noDataError) Error() string { return "no data" }

var errNoData = noDataError{}

// tier is one strategy in a fallback chain.
type tier[T any] struct {
	name string
	run  func() (T, error)
}

// firstOf evaluates tiers in order and returns the first success along with
// the winning tier's name. The final tier must be infallible; if every tier
// fails anyway, the zero value and an empty name are returned.
func firstOf[T any](tiers []tier[T]) (T, string) {
	for _, t := range tiers {
		v, err := t.run()
		if err == nil {
			return v, t.name
		}
		if err == errNoData {
			log.Printf("suggest: %s has no data, falling through", t.name)
		} else {
			log.Printf("suggest: %s failed: %v", t.name, err)
		}
	}
	var zero T
	return zero, ""
}
