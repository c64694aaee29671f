package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "pressure_scores: per-file relevance within a scope",
		SQL: `
CREATE TABLE pressure_scores (
    id               INTEGER PRIMARY KEY,
    file_path        TEXT NOT NULL,
    scope            TEXT NOT NULL,
    raw_pressure     REAL NOT NULL DEFAULT 0 CHECK (raw_pressure >= 0),
    temperature      TEXT NOT NULL CHECK (temperature IN ('HOT', 'WARM', 'COLD')),
    decay_rate       REAL NOT NULL DEFAULT 0.1,
    access_count     INTEGER NOT NULL DEFAULT 0,
    last_accessed_at INTEGER,
    created_at       INTEGER NOT NULL,
    updated_at       INTEGER NOT NULL,

    UNIQUE (file_path, scope)
);

CREATE INDEX idx_pressure_scope    ON pressure_scores(scope);
CREATE INDEX idx_pressure_raw      ON pressure_scores(raw_pressure DESC);
CREATE INDEX idx_pressure_temp     ON pressure_scores(scope, temperature);
`,
	},
	{
		Version:     2,
		Description: "memory_items: long-term learnings with importance scoring",
		SQL: `
CREATE TABLE memory_items (
    id               INTEGER PRIMARY KEY,
    scope            TEXT NOT NULL,
    content          TEXT NOT NULL,
    importance       INTEGER NOT NULL DEFAULT 3 CHECK (importance BETWEEN 1 AND 5),
    access_count     INTEGER NOT NULL DEFAULT 0,
    co_occurrences   INTEGER NOT NULL DEFAULT 0,
    score            REAL NOT NULL DEFAULT 1.0,
    last_accessed_at INTEGER,
    source_session   TEXT,
    created_at       INTEGER NOT NULL,
    updated_at       INTEGER NOT NULL,

    UNIQUE (scope, content)
);

CREATE INDEX idx_memory_scope ON memory_items(scope);
CREATE INDEX idx_memory_score ON memory_items(score DESC);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
