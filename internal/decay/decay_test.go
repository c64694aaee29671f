package decay

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestHalfLifeDays(t *testing.T) {
	tests := []struct {
		importance int
		want       float64
	}{
		{1, 3},
		{2, 7},
		{3, 30},
		{4, 90},
		{5, 365},
		{0, 3},    // saturates low
		{-10, 3},  // saturates low
		{6, 365},  // saturates high
		{100, 365},
	}
	for _, tt := range tests {
		if got := HalfLifeDays(tt.importance); got != tt.want {
			t.Errorf("HalfLifeDays(%d) = %v, want %v", tt.importance, got, tt.want)
		}
	}
}

func TestImportanceWeight(t *testing.T) {
	if got := ImportanceWeight(5); !almostEqual(got, 1.0) {
		t.Errorf("ImportanceWeight(5) = %v, want 1.0", got)
	}
	if got := ImportanceWeight(3); !almostEqual(got, 0.6) {
		t.Errorf("ImportanceWeight(3) = %v, want 0.6", got)
	}
	if got := ImportanceWeight(0); !almostEqual(got, 0.2) {
		t.Errorf("ImportanceWeight(0) = %v, want 0.2 (clamped)", got)
	}
}

func TestComputeScoreFreshCritical(t *testing.T) {
	// Importance 5, fresh, untouched, unconnected → exactly 1.0
	if got := ComputeScore(5, 0, 0, 0); !almostEqual(got, 1.0) {
		t.Errorf("ComputeScore(5,0,0,0) = %v, want 1.0", got)
	}
}

func TestComputeScoreOneHalfLife(t *testing.T) {
	// Importance 3, 30 days stale = one half-life: 0.6 * 0.5 = 0.3
	if got := ComputeScore(3, 0, 30, 0); !almostEqual(got, 0.3) {
		t.Errorf("ComputeScore(3,0,30,0) = %v, want 0.3", got)
	}
}

func TestConnectivityBonusSaturates(t *testing.T) {
	at5 := ConnectivityBonus(5)
	at10 := ConnectivityBonus(10)
	if at5 != at10 {
		t.Errorf("ConnectivityBonus(5) = %v, ConnectivityBonus(10) = %v, want equal", at5, at10)
	}
	if !almostEqual(at5, 1.5) {
		t.Errorf("ConnectivityBonus(5) = %v, want 1.5", at5)
	}
	if !almostEqual(ConnectivityBonus(0), 1.0) {
		t.Errorf("ConnectivityBonus(0) = %v, want 1.0", ConnectivityBonus(0))
	}
}

func TestAccessFactorFloor(t *testing.T) {
	// ln(1) = 0 and ln(2) < 1, both floor to 1
	if got := AccessFactor(0); got != 1 {
		t.Errorf("AccessFactor(0) = %v, want 1", got)
	}
	if got := AccessFactor(1); got != 1 {
		t.Errorf("AccessFactor(1) = %v, want 1", got)
	}
	// ln(11) ≈ 2.398 — above the floor
	if got := AccessFactor(10); !almostEqual(got, math.Log(11)) {
		t.Errorf("AccessFactor(10) = %v, want %v", got, math.Log(11))
	}
}

func TestIsImmuneCritical(t *testing.T) {
	now := time.Now()
	// Critical items are immune regardless of access history
	if !IsImmune(5, 0, nil, now) {
		t.Error("importance 5 with no accesses should be immune")
	}
	stale := now.Add(-400 * 24 * time.Hour)
	if !IsImmune(5, 0, &stale, now) {
		t.Error("importance 5 long-stale should still be immune")
	}
}

func TestIsImmuneRecencyBoundary(t *testing.T) {
	now := time.Now()

	recent := now.Add(-89 * 24 * time.Hour)
	if !IsImmune(3, 3, &recent, now) {
		t.Error("3 accesses, 89 days stale should be immune")
	}

	// Exactly 90 days is NOT immune — the boundary is exclusive
	boundary := now.Add(-90 * 24 * time.Hour)
	if IsImmune(3, 3, &boundary, now) {
		t.Error("exactly 90 days stale should not be immune")
	}

	if IsImmune(3, 2, &recent, now) {
		t.Error("fewer than 3 accesses should not be immune")
	}
	if IsImmune(3, 3, nil, now) {
		t.Error("nil lastAccessedAt should not be immune")
	}
}

func TestComputeScoreMonotoneInStaleness(t *testing.T) {
	prev := math.Inf(1)
	for _, days := range []float64{0, 1, 7, 30, 90, 365} {
		score := ComputeScore(4, 2, days, 1)
		if score > prev {
			t.Errorf("score increased with staleness at %v days: %v > %v", days, score, prev)
		}
		prev = score
	}
}
