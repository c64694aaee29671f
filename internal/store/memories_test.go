package store

import (
	"testing"
	"time"
)

func TestRouteLearnings(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	created, err := db.RouteLearnings("proj", "sess-001", []string{
		"prefer table tests",
		"migrations must be idempotent",
		"", // blank entries are skipped
	})
	if err != nil {
		t.Fatalf("RouteLearnings: %v", err)
	}
	if created != 2 {
		t.Errorf("created = %d, want 2", created)
	}

	items, err := db.ListMemories("proj")
	if err != nil {
		t.Fatalf("ListMemories: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Importance != 3 {
		t.Errorf("Importance = %d, want 3", items[0].Importance)
	}
}

func TestRouteLearningsDuplicateCountsCoOccurrence(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	db.RouteLearnings("proj", "sess-001", []string{"prefer table tests"})
	created, err := db.RouteLearnings("proj", "sess-002", []string{"prefer table tests"})
	if err != nil {
		t.Fatalf("RouteLearnings: %v", err)
	}
	if created != 0 {
		t.Errorf("duplicate created = %d, want 0", created)
	}

	items, _ := db.ListMemories("proj")
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].CoOccurrences != 1 {
		t.Errorf("CoOccurrences = %d, want 1", items[0].CoOccurrences)
	}
}

func TestRescoreMemories(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	db.RouteLearnings("proj", "sess-001", []string{"a learning"})

	// 30 days later, an importance-3 item has passed one half-life:
	// weight 0.6 * decay 0.5 = 0.3
	future := time.Now().Add(30 * 24 * time.Hour)
	n, err := db.RescoreMemories(future)
	if err != nil {
		t.Fatalf("RescoreMemories: %v", err)
	}
	if n != 1 {
		t.Errorf("rescored = %d, want 1", n)
	}

	items, _ := db.ListMemories("proj")
	if items[0].Score > 0.31 || items[0].Score < 0.29 {
		t.Errorf("Score = %v, want ≈0.3", items[0].Score)
	}
}

func TestPruneMemoriesRespectsImmunity(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	now := time.Now()
	past := now.Add(-10 * 24 * time.Hour).UnixMilli()

	// Low-scoring but critical: importance 5, immune unconditionally
	db.Exec(`INSERT INTO memory_items (scope, content, importance, score, created_at, updated_at)
		VALUES ('proj', 'critical', 5, 0.01, ?, ?)`, past, past)
	// Low-scoring, recently active with 3 accesses: immune by recency
	db.Exec(`INSERT INTO memory_items (scope, content, importance, score, access_count, last_accessed_at, created_at, updated_at)
		VALUES ('proj', 'active', 2, 0.01, 3, ?, ?, ?)`, past, past, past)
	// Low-scoring, stale, untouched: prunable
	db.Exec(`INSERT INTO memory_items (scope, content, importance, score, created_at, updated_at)
		VALUES ('proj', 'stale', 2, 0.01, ?, ?)`, past, past)

	removed, err := db.PruneMemories(now, 0.05)
	if err != nil {
		t.Fatalf("PruneMemories: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	items, _ := db.ListMemories("proj")
	if len(items) != 2 {
		t.Fatalf("got %d surviving items, want 2", len(items))
	}
	for _, it := range items {
		if it.Content == "stale" {
			t.Error("stale item should have been pruned")
		}
	}
}

func TestTouchMemory(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	db.RouteLearnings("proj", "sess-001", []string{"a learning"})
	items, _ := db.ListMemories("proj")

	if err := db.TouchMemory(items[0].ID); err != nil {
		t.Fatalf("TouchMemory: %v", err)
	}

	items, _ = db.ListMemories("proj")
	if items[0].AccessCount != 1 {
		t.Errorf("AccessCount = %d, want 1", items[0].AccessCount)
	}
	if items[0].LastAccessedAt == nil {
		t.Error("LastAccessedAt should be set")
	}
}
