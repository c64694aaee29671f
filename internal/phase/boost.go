// Package phase re-weights pressure scores using the currently active plan.
// Files named by the plan being executed get a relevance boost so they
// surface ahead of merely-recent files.
package phase

import (
	"sort"

	"github.com/lazypower/hologram/internal/pressure"
)

// Boost multipliers. Membership in the active plan outweighs membership in
// any other incomplete plan; a file in both sets boosts as active only.
const (
	activeBoost = 1.4
	otherBoost  = 1.2
)

// Relevance is the tiered plan-membership set produced by ScanPlans.
type Relevance struct {
	Active map[string]bool // files of the plan currently being executed
	Other  map[string]bool // files of other incomplete plans
}

// Empty reports whether no plan files are known.
func (r Relevance) Empty() bool {
	return len(r.Active) == 0 && len(r.Other) == 0
}

// ApplyBoost re-weights scored files by plan membership. Boosted values cap
// at 1.0 and temperatures are reclassified from the boosted score. The
// result is re-sorted by raw pressure descending, since boosting can
// reorder the ranking. With no plan sets the input is returned as-is —
// the common no-boost path allocates nothing.
func ApplyBoost(files []pressure.ScoredFile, rel Relevance) []pressure.ScoredFile {
	if rel.Empty() || len(files) == 0 {
		return files
	}

	out := make([]pressure.ScoredFile, len(files))
	copy(out, files)

	for i := range out {
		var mult float64
		switch {
		case rel.Active[out[i].Path]:
			mult = activeBoost
		case rel.Other[out[i].Path]:
			mult = otherBoost
		default:
			continue
		}
		boosted := out[i].RawPressure * mult
		if boosted > 1.0 {
			boosted = 1.0
		}
		out[i].RawPressure = boosted
		out[i].Temperature = pressure.Classify(boosted)
		out[i].PressureBucket = pressure.Bucket(boosted)
		out[i].PhaseBoosted = true
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RawPressure > out[j].RawPressure
	})
	return out
}
