package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lazypower/hologram/internal/pressure"
)

// Upsert writes the absolute pressure value for (file, scope). The pair is
// unique; a second write for the same pair replaces the score and bumps the
// access count and last_accessed_at.
func (db *DB) Upsert(file, scope string, raw float64, temp pressure.Temperature, decayRate float64) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		INSERT INTO pressure_scores
			(file_path, scope, raw_pressure, temperature, decay_rate, access_count, last_accessed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?, ?)
		ON CONFLICT (file_path, scope) DO UPDATE SET
			raw_pressure     = excluded.raw_pressure,
			temperature      = excluded.temperature,
			decay_rate       = excluded.decay_rate,
			access_count     = access_count + 1,
			last_accessed_at = excluded.last_accessed_at,
			updated_at       = excluded.updated_at
	`, file, scope, raw, string(temp), decayRate, now, now, now)
	if err != nil {
		return fmt.Errorf("upsert pressure %s@%s: %w", file, scope, err)
	}
	return nil
}

// Get returns the pressure row for (file, scope), or nil if not found.
func (db *DB) Get(file, scope string) (*pressure.Row, error) {
	var r pressure.Row
	var temp string
	var lastAccess sql.NullInt64
	err := db.QueryRow(`
		SELECT file_path, scope, raw_pressure, temperature, decay_rate, access_count, last_accessed_at
		FROM pressure_scores WHERE file_path = ? AND scope = ?
	`, file, scope).Scan(&r.FilePath, &r.Scope, &r.RawPressure, &temp, &r.DecayRate, &r.AccessCount, &lastAccess)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pressure %s@%s: %w", file, scope, err)
	}
	r.Temperature = pressure.Temperature(temp)
	if lastAccess.Valid {
		t := time.UnixMilli(lastAccess.Int64)
		r.LastAccessedAt = &t
	}
	return &r, nil
}

// Query returns rows for the given scope (all scopes when empty) whose
// temperature is at or above min, ordered by raw_pressure descending.
func (db *DB) Query(scope string, min pressure.Temperature) ([]pressure.Row, error) {
	query := `
		SELECT file_path, scope, raw_pressure, temperature, decay_rate, access_count, last_accessed_at
		FROM pressure_scores`
	var args []any
	if scope != "" {
		query += ` WHERE scope = ?`
		args = append(args, scope)
	}
	query += ` ORDER BY raw_pressure DESC`

	rows, err := db.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pressure (%s): %w", scope, err)
	}
	defer rows.Close()

	var out []pressure.Row
	for rows.Next() {
		var r pressure.Row
		var temp string
		var lastAccess sql.NullInt64
		if err := rows.Scan(&r.FilePath, &r.Scope, &r.RawPressure, &temp, &r.DecayRate, &r.AccessCount, &lastAccess); err != nil {
			return nil, fmt.Errorf("scan pressure row: %w", err)
		}
		r.Temperature = pressure.Temperature(temp)
		if lastAccess.Valid {
			t := time.UnixMilli(lastAccess.Int64)
			r.LastAccessedAt = &t
		}
		if !r.Temperature.AtLeast(min) {
			continue
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DecayAll applies one decay step to every row in scope (all scopes when
// empty): raw *= (1 - decay_rate), temperature reclassified in the same
// update. Returns the number of rows changed; 0 when no rows exist.
//
// Computed in Go rather than SQL because the classification thresholds live
// in the pressure package, and modernc.org/sqlite lacks pow() anyway.
func (db *DB) DecayAll(scope string) (int, error) {
	query := `SELECT id, raw_pressure, decay_rate FROM pressure_scores`
	var args []any
	if scope != "" {
		query += ` WHERE scope = ?`
		args = append(args, scope)
	}

	rows, err := db.DB.Query(query, args...)
	if err != nil {
		return 0, fmt.Errorf("query decay targets: %w", err)
	}

	type target struct {
		id   int64
		raw  float64
		rate float64
	}
	var targets []target
	for rows.Next() {
		var t target
		if err := rows.Scan(&t.id, &t.raw, &t.rate); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan decay target: %w", err)
		}
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	now := time.Now().UnixMilli()
	updated := 0
	for _, t := range targets {
		decayed := t.raw * (1 - t.rate)
		if decayed < 0 {
			decayed = 0
		}
		if decayed == t.raw {
			continue
		}
		temp := pressure.Classify(decayed)
		if _, err := db.Exec(`
			UPDATE pressure_scores SET raw_pressure = ?, temperature = ?, updated_at = ? WHERE id = ?
		`, decayed, string(temp), now, t.id); err != nil {
			return updated, fmt.Errorf("update decay: %w", err)
		}
		updated++
	}
	return updated, nil
}
