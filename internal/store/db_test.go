package store

import (
	"testing"
)

func TestOpenMemory(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	if db.Path != ":memory:" {
		t.Errorf("Path = %q, want :memory:", db.Path)
	}
}

func TestSchemaVersion(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	v, err := db.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != 2 {
		t.Errorf("SchemaVersion = %d, want 2", v)
	}
}

func TestTablesExist(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	tables := []string{"schema_versions", "pressure_scores", "memory_items"}
	for _, table := range tables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found: %v", table, err)
		}
	}
}

func TestPressureConstraints(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	// Valid insert
	_, err = db.Exec(`
		INSERT INTO pressure_scores (file_path, scope, raw_pressure, temperature, created_at, updated_at)
		VALUES ('a.go', 'proj', 0.5, 'WARM', 1000, 1000)
	`)
	if err != nil {
		t.Fatalf("valid insert failed: %v", err)
	}

	// Invalid temperature
	_, err = db.Exec(`
		INSERT INTO pressure_scores (file_path, scope, raw_pressure, temperature, created_at, updated_at)
		VALUES ('b.go', 'proj', 0.5, 'TEPID', 1000, 1000)
	`)
	if err == nil {
		t.Error("expected error for invalid temperature, got nil")
	}

	// Negative pressure
	_, err = db.Exec(`
		INSERT INTO pressure_scores (file_path, scope, raw_pressure, temperature, created_at, updated_at)
		VALUES ('c.go', 'proj', -0.1, 'COLD', 1000, 1000)
	`)
	if err == nil {
		t.Error("expected error for negative raw_pressure, got nil")
	}

	// Duplicate (file, scope)
	_, err = db.Exec(`
		INSERT INTO pressure_scores (file_path, scope, raw_pressure, temperature, created_at, updated_at)
		VALUES ('a.go', 'proj', 0.6, 'WARM', 1000, 1000)
	`)
	if err == nil {
		t.Error("expected error for duplicate (file_path, scope), got nil")
	}
}

func TestMemoryItemConstraints(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	// Importance out of range
	_, err = db.Exec(`
		INSERT INTO memory_items (scope, content, importance, created_at, updated_at)
		VALUES ('proj', 'x', 6, 1000, 1000)
	`)
	if err == nil {
		t.Error("expected error for importance 6, got nil")
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	// Running migrate again should be a no-op
	if err := db.migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	v, err := db.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != 2 {
		t.Errorf("SchemaVersion after re-migrate = %d, want 2", v)
	}
}

func TestWALMode(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	var mode string
	err = db.QueryRow("PRAGMA journal_mode").Scan(&mode)
	if err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	// In-memory databases may use "memory" mode instead of WAL
	if mode != "wal" && mode != "memory" {
		t.Errorf("journal_mode = %q, want wal or memory", mode)
	}
}
