package checkpoint

import (
	"encoding/json"
	"testing"
)

// validDoc returns a minimal valid checkpoint document as a mutable map.
func validDoc(id string) map[string]any {
	return map[string]any{
		"schema":  Schema,
		"version": Version,
		"meta": map[string]any{
			"checkpoint_id":       id,
			"session_id":          "sess-001",
			"scope":               "proj",
			"trigger":             "manual",
			"token_usage":         0.82,
			"previous_checkpoint": "",
		},
		"working":        "refactoring the parser",
		"decisions":      []string{"use cobra"},
		"files":          map[string]any{"changed": []string{"a.go"}, "read": []string{}, "hot": []string{"a.go"}},
		"gsd":            nil,
		"open_questions": []string{"what about windows?"},
		"learnings":      []string{"table tests read better"},
		"thread":         "was mid-edit in a.go",
	}
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestParseValid(t *testing.T) {
	cp, err := Parse(mustMarshal(t, validDoc("cp-1")))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cp.Meta.CheckpointID != "cp-1" {
		t.Errorf("CheckpointID = %q", cp.Meta.CheckpointID)
	}
	if cp.Working != "refactoring the parser" {
		t.Errorf("Working = %q", cp.Working)
	}
	if len(cp.Files.Hot) != 1 || cp.Files.Hot[0] != "a.go" {
		t.Errorf("Files.Hot = %v", cp.Files.Hot)
	}
	if cp.GSD != nil {
		t.Errorf("GSD = %+v, want nil", cp.GSD)
	}
}

func TestParseRejectsWrongSchema(t *testing.T) {
	doc := validDoc("cp-1")
	doc["schema"] = "something/else"
	if _, err := Parse(mustMarshal(t, doc)); err == nil {
		t.Error("expected error for wrong schema")
	}
}

func TestParseRejectsWrongVersion(t *testing.T) {
	doc := validDoc("cp-1")
	doc["version"] = Version + 1
	if _, err := Parse(mustMarshal(t, doc)); err == nil {
		t.Error("expected error for wrong version")
	}
}

func TestParseRejectsMissingSections(t *testing.T) {
	for _, section := range requiredSections {
		doc := validDoc("cp-1")
		delete(doc, section)
		if _, err := Parse(mustMarshal(t, doc)); err == nil {
			t.Errorf("expected error for missing %q", section)
		}
	}
}

func TestParseRejectsWrongShape(t *testing.T) {
	// decisions must be a string array
	doc := validDoc("cp-1")
	doc["decisions"] = "not an array"
	if _, err := Parse(mustMarshal(t, doc)); err == nil {
		t.Error("expected error for decisions as string")
	}

	// working must be a string
	doc = validDoc("cp-1")
	doc["working"] = 42
	if _, err := Parse(mustMarshal(t, doc)); err == nil {
		t.Error("expected error for working as number")
	}

	// meta must carry identity
	doc = validDoc("cp-1")
	doc["meta"] = map[string]any{"scope": "proj"}
	if _, err := Parse(mustMarshal(t, doc)); err == nil {
		t.Error("expected error for meta without ids")
	}
}

func TestParseToleratesUnknownKeys(t *testing.T) {
	doc := validDoc("cp-1")
	doc["future_section"] = map[string]any{"anything": true}
	cp, err := Parse(mustMarshal(t, doc))
	if err != nil {
		t.Fatalf("unknown top-level key should be tolerated: %v", err)
	}
	if cp == nil {
		t.Fatal("expected checkpoint")
	}
}

func TestParseRejectsNonObject(t *testing.T) {
	if _, err := Parse([]byte(`[1,2,3]`)); err == nil {
		t.Error("expected error for array document")
	}
	if _, err := Parse([]byte(`{truncated`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestParseGSD(t *testing.T) {
	doc := validDoc("cp-1")
	doc["gsd"] = map[string]any{"active": true, "phase": "build", "goal": "ship it"}
	cp, err := Parse(mustMarshal(t, doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cp.GSD == nil || !cp.GSD.Active || cp.GSD.Phase != "build" {
		t.Errorf("GSD = %+v", cp.GSD)
	}
}
