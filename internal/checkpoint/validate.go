package checkpoint

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// requiredSections are the top-level keys a valid checkpoint must carry,
// beyond schema and version.
var requiredSections = []string{
	"meta", "working", "decisions", "files", "open_questions", "learnings", "thread",
}

// knownKeys are all top-level keys this version understands. Anything else
// is tolerated (a newer writer may add sections) but logged.
var knownKeys = map[string]bool{
	"schema": true, "version": true, "gsd": true,
	"meta": true, "working": true, "decisions": true, "files": true,
	"open_questions": true, "learnings": true, "thread": true,
}

// Load reads and validates a checkpoint file. Any structural mismatch —
// wrong schema or version, a missing required section, a section of the
// wrong shape — is an error; callers in the recovery chain treat an error
// as "this candidate failed" and move on.
func Load(path string) (*Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}
	return Parse(data)
}

// Parse validates raw checkpoint bytes. See Load.
func Parse(data []byte) (*Checkpoint, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("not a checkpoint object: %w", err)
	}

	var cp Checkpoint

	raw, ok := top["schema"]
	if !ok {
		return nil, fmt.Errorf("missing schema")
	}
	if err := json.Unmarshal(raw, &cp.Schema); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	if cp.Schema != Schema {
		return nil, fmt.Errorf("schema %q, want %q", cp.Schema, Schema)
	}

	raw, ok = top["version"]
	if !ok {
		return nil, fmt.Errorf("missing version")
	}
	if err := json.Unmarshal(raw, &cp.Version); err != nil {
		return nil, fmt.Errorf("version: %w", err)
	}
	if cp.Version != Version {
		return nil, fmt.Errorf("version %d, want %d", cp.Version, Version)
	}

	for _, key := range requiredSections {
		if _, ok := top[key]; !ok {
			return nil, fmt.Errorf("missing section %q", key)
		}
	}
	for key := range top {
		if !knownKeys[key] {
			log.Printf("checkpoint: unknown section %q (tolerated)", key)
		}
	}

	// Each section must unmarshal into its declared shape
	if err := json.Unmarshal(top["meta"], &cp.Meta); err != nil {
		return nil, fmt.Errorf("meta: %w", err)
	}
	if cp.Meta.CheckpointID == "" || cp.Meta.SessionID == "" {
		return nil, fmt.Errorf("meta missing checkpoint_id or session_id")
	}
	if err := json.Unmarshal(top["working"], &cp.Working); err != nil {
		return nil, fmt.Errorf("working: %w", err)
	}
	if err := json.Unmarshal(top["decisions"], &cp.Decisions); err != nil {
		return nil, fmt.Errorf("decisions: %w", err)
	}
	if err := json.Unmarshal(top["files"], &cp.Files); err != nil {
		return nil, fmt.Errorf("files: %w", err)
	}
	if err := json.Unmarshal(top["open_questions"], &cp.OpenQuestions); err != nil {
		return nil, fmt.Errorf("open_questions: %w", err)
	}
	if err := json.Unmarshal(top["learnings"], &cp.Learnings); err != nil {
		return nil, fmt.Errorf("learnings: %w", err)
	}
	if err := json.Unmarshal(top["thread"], &cp.Thread); err != nil {
		return nil, fmt.Errorf("thread: %w", err)
	}
	if raw, ok := top["gsd"]; ok {
		if err := json.Unmarshal(raw, &cp.GSD); err != nil {
			return nil, fmt.Errorf("gsd: %w", err)
		}
	}

	return &cp, nil
}
