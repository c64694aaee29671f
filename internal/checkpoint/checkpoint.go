// Package checkpoint persists and recovers session snapshots.
//
// A checkpoint is a JSON document written on token-utilization or manual
// triggers. Checkpoints form a singly-linked backward chain through
// meta.previous_checkpoint (basename-only, never a path), and a small YAML
// pointer file names the most recent one. Recovery walks pointer → directory
// scan → previous links, tolerating corrupt or missing candidates at every
// step.
package checkpoint

import "time"

// Schema and Version identify the checkpoint document format. A candidate
// whose pair does not match exactly is rejected during recovery.
const (
	Schema  = "hologram/checkpoint"
	Version = 2
)

// PointerFile is the basename of the pointer document within a checkpoint
// directory. It holds a single "ref: <basename>" line.
const PointerFile = "latest.yaml"

// Meta carries checkpoint identity and provenance.
type Meta struct {
	CheckpointID string  `json:"checkpoint_id"`
	SessionID    string  `json:"session_id"`
	Scope        string  `json:"scope"`
	Trigger      string  `json:"trigger"`
	TokenUsage   float64 `json:"token_usage"`
	// PreviousCheckpoint is basename-only, or empty for the chain head.
	PreviousCheckpoint string `json:"previous_checkpoint"`
}

// Files lists the paths a session touched, grouped by how.
type Files struct {
	Changed []string `json:"changed"`
	Read    []string `json:"read"`
	Hot     []string `json:"hot"`
}

// GSD is the embedded planning state ("get stuff done"), present only when
// the session was driving a plan.
type GSD struct {
	Active bool   `json:"active"`
	Phase  string `json:"phase,omitempty"`
	Goal   string `json:"goal,omitempty"`
}

// Checkpoint is a durable session snapshot. Once loaded it is read-only;
// nothing in this package mutates a recovered checkpoint.
type Checkpoint struct {
	Schema        string   `json:"schema"`
	Version       int      `json:"version"`
	Meta          Meta     `json:"meta"`
	Working       string   `json:"working"`
	Decisions     []string `json:"decisions"`
	Files         Files    `json:"files"`
	GSD           *GSD     `json:"gsd"`
	OpenQuestions []string `json:"open_questions"`
	Learnings     []string `json:"learnings"`
	Thread        string   `json:"thread"`
}

// RecoveryResult pairs a recovered checkpoint with the fallback tier that
// produced it. RecoveryPath is empty on the happy path (pointer file),
// "dir-scan" for a directory-scan hit, or "previous-link(h-hop)" when the
// backward chain was walked.
type RecoveryResult struct {
	Checkpoint   *Checkpoint
	RecoveryPath string
}

// Timestamp extracts the date encoded in a checkpoint basename
// (YYYY-MM-DD_cpN.json), or the zero time when the name doesn't parse.
func Timestamp(basename string) time.Time {
	if len(basename) < 10 {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", basename[:10])
	if err != nil {
		return time.Time{}
	}
	return t
}
