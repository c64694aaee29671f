package checkpoint

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// writeDoc writes a raw document under dir.
func writeDoc(t *testing.T, dir, name string, doc any) {
	t.Helper()
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

// corruptDoc is structurally a checkpoint but fails validation, optionally
// carrying a previous link.
func corruptDoc(previous string) map[string]any {
	return map[string]any{
		"schema":  Schema,
		"version": Version + 99, // wrong version → invalid
		"meta":    map[string]any{"checkpoint_id": "x", "session_id": "s", "previous_checkpoint": previous},
	}
}

func TestRecoverViaPointer(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "2026-08-29_cp1.json", validDoc("cp-1"))
	if err := WritePointer(dir, "2026-08-29_cp1.json"); err != nil {
		t.Fatalf("WritePointer: %v", err)
	}

	res := Recover(dir)
	if res == nil {
		t.Fatal("expected recovery")
	}
	if res.RecoveryPath != "" {
		t.Errorf("RecoveryPath = %q, want empty on happy path", res.RecoveryPath)
	}
	if res.Checkpoint.Meta.CheckpointID != "cp-1" {
		t.Errorf("recovered %q", res.Checkpoint.Meta.CheckpointID)
	}
}

func TestRecoverPointerRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "2026-08-29_cp1.json", validDoc("cp-1"))
	os.WriteFile(filepath.Join(dir, PointerFile), []byte("ref: ../../etc/passwd\n"), 0644)

	// Pointer is rejected, but the dir scan still finds the checkpoint
	res := Recover(dir)
	if res == nil {
		t.Fatal("expected recovery via dir scan")
	}
	if res.RecoveryPath != "dir-scan" {
		t.Errorf("RecoveryPath = %q, want dir-scan", res.RecoveryPath)
	}
}

func TestRecoverDirScanSkipsCorrupt(t *testing.T) {
	dir := t.TempDir()
	// No pointer file. The newest candidate is corrupt; the scan must
	// skip it and land on the older valid one.
	writeDoc(t, dir, "2026-08-28_cp1.json", validDoc("cp-B"))
	writeDoc(t, dir, "2026-08-29_cp1.json", corruptDoc(""))

	res := Recover(dir)
	if res == nil {
		t.Fatal("expected recovery")
	}
	if res.RecoveryPath != "dir-scan" {
		t.Errorf("RecoveryPath = %q, want dir-scan", res.RecoveryPath)
	}
	if res.Checkpoint.Meta.CheckpointID != "cp-B" {
		t.Errorf("recovered %q, want cp-B", res.Checkpoint.Meta.CheckpointID)
	}
}

func TestRecoverNumericSuffixSort(t *testing.T) {
	dir := t.TempDir()
	// cp10 must sort after cp9 (numeric, not lexical)
	writeDoc(t, dir, "2026-08-29_cp9.json", validDoc("cp-9"))
	writeDoc(t, dir, "2026-08-29_cp10.json", validDoc("cp-10"))

	res := Recover(dir)
	if res == nil {
		t.Fatal("expected recovery")
	}
	if res.Checkpoint.Meta.CheckpointID != "cp-10" {
		t.Errorf("recovered %q, want cp-10 (newest)", res.Checkpoint.Meta.CheckpointID)
	}
}

func TestRecoverPreviousLink(t *testing.T) {
	dir := t.TempDir()
	// The only scannable candidate is corrupt, but its back-reference
	// points at a valid snapshot the scan doesn't list.
	writeDoc(t, dir, "2026-08-28_cp2.snapshot", validDoc("cp-old"))
	writeDoc(t, dir, "2026-08-29_cp1.json", corruptDoc("2026-08-28_cp2.snapshot"))

	res := Recover(dir)
	if res == nil {
		t.Fatal("expected recovery via previous link")
	}
	if res.RecoveryPath != "previous-link(1-hop)" {
		t.Errorf("RecoveryPath = %q, want previous-link(1-hop)", res.RecoveryPath)
	}
	if res.Checkpoint.Meta.CheckpointID != "cp-old" {
		t.Errorf("recovered %q", res.Checkpoint.Meta.CheckpointID)
	}
}

func TestRecoverCycleAborts(t *testing.T) {
	dir := t.TempDir()
	// A → B → A: both invalid, mutually linked
	writeDoc(t, dir, "2026-08-29_cp1.json", corruptDoc("2026-08-29_cp2.json"))
	writeDoc(t, dir, "2026-08-29_cp2.json", corruptDoc("2026-08-29_cp1.json"))

	// Must terminate and return nil, not hang
	if res := Recover(dir); res != nil {
		t.Errorf("expected nil for cyclic chain, got %+v", res)
	}
}

func TestRecoverHopBound(t *testing.T) {
	dir := t.TempDir()
	// Chain of unlisted snapshots: corrupt → c1 → c2 → c3 → valid.
	// The valid target sits 4 hops out, one past the bound.
	writeDoc(t, dir, "2026-08-29_cp1.json", corruptDoc("hop1.snapshot"))
	writeDoc(t, dir, "hop1.snapshot", corruptDoc("hop2.snapshot"))
	writeDoc(t, dir, "hop2.snapshot", corruptDoc("hop3.snapshot"))
	writeDoc(t, dir, "hop3.snapshot", corruptDoc("valid.snapshot"))
	writeDoc(t, dir, "valid.snapshot", validDoc("cp-deep"))

	if res := Recover(dir); res != nil {
		t.Errorf("expected nil beyond 3 hops, got %v", res.RecoveryPath)
	}
}

func TestRecoverEmptyDir(t *testing.T) {
	if res := Recover(t.TempDir()); res != nil {
		t.Errorf("expected nil for empty dir, got %+v", res)
	}
}

func TestRecoverMissingDir(t *testing.T) {
	if res := Recover(filepath.Join(t.TempDir(), "nope")); res != nil {
		t.Errorf("expected nil for missing dir, got %+v", res)
	}
}

func TestRecoverPreviousLinkSanitized(t *testing.T) {
	dir := t.TempDir()
	// A back-reference with a path separator must not be followed
	writeDoc(t, dir, "2026-08-29_cp1.json", corruptDoc("../escape.json"))

	if res := Recover(dir); res != nil {
		t.Errorf("expected nil, got %+v", res)
	}
}
