// Package decay computes importance-weighted relevance scores.
//
// Scores combine four factors: an importance weight, an access-frequency
// boost, exponential time decay with an importance-dependent half-life, and
// a co-occurrence connectivity bonus. All functions are pure — callers
// supply elapsed time, nothing here reads a clock except IsImmune, which
// takes "now" explicitly.
package decay

import (
	"math"
	"time"
)

// halfLives maps an importance tier to its decay half-life in days.
// Importance 5 memories take a year to halve; importance 1 fades in days.
var halfLives = map[int]float64{
	1: 3,
	2: 7,
	3: 30,
	4: 90,
	5: 365,
}

// immunityWindow is how recently an item must have been accessed to be
// protected from pruning. The boundary is exclusive: exactly 90 days stale
// is NOT immune.
const immunityWindow = 90 * 24 * time.Hour

// minImmuneAccesses is the access count below which recency alone does not
// grant immunity.
const minImmuneAccesses = 3

func clampImportance(importance int) int {
	if importance < 1 {
		return 1
	}
	if importance > 5 {
		return 5
	}
	return importance
}

// HalfLifeDays returns the decay half-life in days for an importance tier.
// Importance saturates to [1,5].
func HalfLifeDays(importance int) float64 {
	return halfLives[clampImportance(importance)]
}

// ImportanceWeight maps importance to a base weight: 5 → 1.0, 3 → 0.6.
func ImportanceWeight(importance int) float64 {
	return float64(clampImportance(importance)) * 0.2
}

// Factor returns the exponential decay multiplier 0.5^(days/halfLife).
func Factor(daysSinceAccess, halfLifeDays float64) float64 {
	if halfLifeDays <= 0 {
		return 0
	}
	return math.Pow(0.5, daysSinceAccess/halfLifeDays)
}

// AccessFactor boosts frequently accessed items: max(1, ln(count+1)).
// The floor of 1 means an untouched item is never penalized for being new.
func AccessFactor(accessCount int) float64 {
	if accessCount < 0 {
		accessCount = 0
	}
	f := math.Log(float64(accessCount) + 1)
	if f < 1 {
		return 1
	}
	return f
}

// ConnectivityBonus rewards items that co-occur with others, saturating at
// five co-occurrences: 1 + 0.1*min(co, 5).
func ConnectivityBonus(coOccurrences int) float64 {
	if coOccurrences < 0 {
		coOccurrences = 0
	}
	if coOccurrences > 5 {
		coOccurrences = 5
	}
	return 1 + 0.1*float64(coOccurrences)
}

// ComputeScore combines all four factors into a single relevance score.
// A fresh, untouched, unconnected importance-5 item scores exactly 1.0.
func ComputeScore(importance, accessCount int, daysSinceAccess float64, coOccurrences int) float64 {
	return ImportanceWeight(importance) *
		AccessFactor(accessCount) *
		Factor(daysSinceAccess, HalfLifeDays(importance)) *
		ConnectivityBonus(coOccurrences)
}

// IsImmune reports whether an item is protected from pruning.
// Critical items (importance >= 5) are always immune. Anything else needs at
// least three accesses, the most recent strictly within the 90-day window.
func IsImmune(importance, accessCount int, lastAccessedAt *time.Time, now time.Time) bool {
	if importance >= 5 {
		return true
	}
	if accessCount < minImmuneAccesses || lastAccessedAt == nil {
		return false
	}
	return now.Sub(*lastAccessedAt) < immunityWindow
}
