package suggest

import (
	"time"

	"github.com/lazypower/hologram/internal/pressure"
	"github.com/lazypower/hologram/internal/ranking"
)

// Sources a Suggestion can come from. Source is always populated so callers
// can tell degraded output from nominal output.
const (
	SourceRanking  = "ranking"
	SourcePressure = "pressure-store"
	SourceRecency  = "recency-fallback"
	SourceNone     = "none"
)

// NeutralScore is assigned to every file in the recency fallback: enough to
// classify WARM, not enough to pretend we ranked anything.
const NeutralScore = 0.45

// maxRetryPause bounds the wait before the single ranking retry.
const maxRetryPause = 250 * time.Millisecond

// Ranker is the slice of the sidecar client the chain depends on.
type Ranker interface {
	Query(ranking.RequestPayload) (*ranking.ResponsePayload, error)
	Update(filesChanged, boostFiles []string) error
}

// Suggestion is the chain's output: temperature-tiered file lists plus the
// source tier that produced them.
type Suggestion struct {
	Hot    []pressure.ScoredFile `json:"hot"`
	Warm   []pressure.ScoredFile `json:"warm"`
	Cold   []pressure.ScoredFile `json:"cold"`
	Source string                `json:"source"`
}

// Engine runs the degradation chain over a ranker and a pressure store.
type Engine struct {
	ranker  Ranker
	store   *pressure.Store
	timeout time.Duration

	// sleep is swapped out in tests
	sleep func(time.Duration)
}

func NewEngine(ranker Ranker, store *pressure.Store, timeout time.Duration) *Engine {
	return &Engine{ranker: ranker, store: store, timeout: timeout, sleep: time.Sleep}
}

// retryPause is half the configured timeout, capped. It gives a sidecar that
// just restarted a moment to come up before the one retry.
func (e *Engine) retryPause() time.Duration {
	pause := e.timeout / 2
	if pause > maxRetryPause {
		pause = maxRetryPause
	}
	return pause
}

// Suggest produces a context suggestion for the given scope. It tries the
// live ranker (with exactly one retry), then persisted HOT and WARM scores,
// then classifies the recently touched files as uniformly WARM. It never
// fails; the terminal tier always succeeds.
func (e *Engine) Suggest(scope string, payload ranking.RequestPayload, recent []string) Suggestion {
	s, source := firstOf([]tier[Suggestion]{
		{name: SourceRanking, run: func() (Suggestion, error) { return e.fromRanking(payload) }},
		{name: SourcePressure, run: func() (Suggestion, error) { return e.fromPressure(scope) }},
		{name: SourceRecency, run: func() (Suggestion, error) { return e.fromRecency(recent), nil }},
	})
	s.Source = source
	return s
}

func (e *Engine) fromRanking(payload ranking.RequestPayload) (Suggestion, error) {
	resp, err := e.ranker.Query(payload)
	if err != nil {
		e.sleep(e.retryPause())
		resp, err = e.ranker.Query(payload)
	}
	if err != nil {
		return Suggestion{}, err
	}
	return Suggestion{Hot: resp.Hot, Warm: resp.Warm, Cold: resp.Cold}, nil
}

func (e *Engine) fromPressure(scope string) (Suggestion, error) {
	rows := e.store.ScoredAbove(scope, pressure.Warm)
	if len(rows) == 0 {
		return Suggestion{}, errNoData
	}
	var s Suggestion
	for _, f := range rows {
		if f.Temperature == pressure.Hot {
			s.Hot = append(s.Hot, f)
		} else {
			s.Warm = append(s.Warm, f)
		}
	}
	return s, nil
}

func (e *Engine) fromRecency(recent []string) Suggestion {
	var s Suggestion
	for _, path := range recent {
		s.Warm = append(s.Warm, pressure.ScoredFile{
			Path:           path,
			RawPressure:    NeutralScore,
			Temperature:    pressure.Warm,
			SystemBucket:   "project",
			PressureBucket: pressure.Bucket(NeutralScore),
		})
	}
	return s
}

// Rescore asks the sidecar to rescore after file changes. When the sidecar
// is unreachable it reports which data source will effectively serve the
// next query: "pressure-store" when persisted HOT rows exist, else "none".
func (e *Engine) Rescore(scope string, filesChanged, boostFiles []string) string {
	_, source := firstOf([]tier[struct{}]{
		{name: SourceRanking, run: func() (struct{}, error) {
			return struct{}{}, e.ranker.Update(filesChanged, boostFiles)
		}},
		{name: SourcePressure, run: func() (struct{}, error) {
			if len(e.store.Query(scope, pressure.Hot)) == 0 {
				return struct{}{}, errNoData
			}
			return struct{}{}, nil
		}},
	})
	if source == "" {
		return SourceNone
	}
	return source
}
