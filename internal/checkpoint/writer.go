package checkpoint

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Write persists a checkpoint to dir and updates the pointer file.
//
// The basename is <date>_cpN.json with N monotonic within the day, which is
// exactly the shape the recovery sort expects. The previous link is taken
// from the current pointer when unset, keeping the backward chain intact.
// The document is written to a temp file and renamed so a crashed writer
// never leaves a half-written candidate behind.
func Write(dir string, cp *Checkpoint, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create checkpoint dir: %w", err)
	}

	cp.Schema = Schema
	cp.Version = Version
	if cp.Meta.CheckpointID == "" {
		entropy := ulid.Monotonic(rand.Reader, 0)
		id, err := ulid.New(ulid.Timestamp(now), entropy)
		if err != nil {
			return "", fmt.Errorf("generate checkpoint id: %w", err)
		}
		cp.Meta.CheckpointID = id.String()
	}
	if cp.Meta.PreviousCheckpoint == "" {
		if ref, err := ReadPointer(dir); err == nil {
			cp.Meta.PreviousCheckpoint = ref
		}
	}

	date := now.Format("2006-01-02")
	name := fmt.Sprintf("%s_cp%d.json", date, nextSequence(dir, date))

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal checkpoint: %w", err)
	}

	path := filepath.Join(dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("finalize checkpoint: %w", err)
	}

	if err := WritePointer(dir, name); err != nil {
		return name, fmt.Errorf("update pointer: %w", err)
	}
	return name, nil
}

// nextSequence returns one past the highest _cpN suffix among checkpoints
// with the given date prefix; 1 when the day has none.
func nextSequence(dir, date string) int {
	max := 0
	for _, name := range listCandidates(dir) {
		if !strings.HasPrefix(name, date+"_cp") {
			continue
		}
		if n := sequenceOf(name); n > max {
			max = n
		}
	}
	return max + 1
}
