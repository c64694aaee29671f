package suggest

import (
	"github.com/lazypower/hologram/internal/phase"
	"github.com/lazypower/hologram/internal/pressure"
)

// Boosted applies phase-relevance boosting across all tiers of a suggestion
// and re-buckets files by their boosted temperature. With no plan relevance
// the suggestion is returned unchanged.
func Boosted(s Suggestion, rel phase.Relevance) Suggestion {
	if rel.Empty() {
		return s
	}

	all := make([]pressure.ScoredFile, 0, len(s.Hot)+len(s.Warm)+len(s.Cold))
	all = append(all, s.Hot...)
	all = append(all, s.Warm...)
	all = append(all, s.Cold...)

	out := Suggestion{Source: s.Source}
	for _, f := range phase.ApplyBoost(all, rel) {
		switch f.Temperature {
		case pressure.Hot:
			out.Hot = append(out.Hot, f)
		case pressure.Warm:
			out.Warm = append(out.Warm, f)
		default:
			out.Cold = append(out.Cold, f)
		}
	}
	return out
}
