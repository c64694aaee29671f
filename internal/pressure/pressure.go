// Package pressure tracks per-file relevance scores ("pressure") within a
// project scope. Scores live in [0,1] and carry a derived temperature:
// HOT (>= 0.7), WARM (>= 0.3), COLD otherwise.
package pressure

import "time"

// Temperature classifies a pressure score.
type Temperature string

const (
	Hot  Temperature = "HOT"
	Warm Temperature = "WARM"
	Cold Temperature = "COLD"
)

// Thresholds for temperature classification.
const (
	HotThreshold  = 0.7
	WarmThreshold = 0.3
)

// GlobalScope is the reserved sentinel for "no project". It partitions
// scope-less rows without resorting to a NULL scope, which would break the
// (file_path, scope) uniqueness constraint. Real projects must never use it.
const GlobalScope = "__global__"

// ScopeFor maps a project identifier to a scope, substituting the global
// sentinel for the empty project.
func ScopeFor(project string) string {
	if project == "" {
		return GlobalScope
	}
	return project
}

// Classify derives the temperature for a raw pressure value.
func Classify(raw float64) Temperature {
	switch {
	case raw >= HotThreshold:
		return Hot
	case raw >= WarmThreshold:
		return Warm
	default:
		return Cold
	}
}

// rank orders temperatures for minimum-temperature filtering.
func (t Temperature) rank() int {
	switch t {
	case Hot:
		return 2
	case Warm:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether t is at least as hot as min.
func (t Temperature) AtLeast(min Temperature) bool {
	return t.rank() >= min.rank()
}

// Row is a persisted pressure score for one (file, scope) pair.
type Row struct {
	FilePath       string
	Scope          string
	RawPressure    float64
	Temperature    Temperature
	DecayRate      float64
	AccessCount    int
	LastAccessedAt *time.Time
}

// ScoredFile is the transient projection exchanged between the pressure
// store, the phase booster, and the suggestion chain. Field names match the
// ranking sidecar wire format.
type ScoredFile struct {
	Path           string      `json:"path"`
	RawPressure    float64     `json:"raw_pressure"`
	Temperature    Temperature `json:"temperature"`
	SystemBucket   string      `json:"system_bucket,omitempty"`
	PressureBucket int         `json:"pressure_bucket,omitempty"`
	PhaseBoosted   bool        `json:"phase_boosted,omitempty"`
}

// Bucket maps a raw pressure to the sidecar's integer pressure bucket.
// The sidecar treats >= 20 as WARM territory and >= 30 as boosted.
func Bucket(raw float64) int {
	return int(raw * 50)
}

// Scored converts a Row to its ScoredFile projection.
func (r Row) Scored() ScoredFile {
	return ScoredFile{
		Path:           r.FilePath,
		RawPressure:    r.RawPressure,
		Temperature:    r.Temperature,
		SystemBucket:   "project",
		PressureBucket: Bucket(r.RawPressure),
	}
}
