package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lazypower/hologram/internal/decay"
)

// MemoryItem is a long-term learning routed out of a checkpoint. Unlike
// pressure rows, memory items score by importance-weighted decay and are
// candidates for pruning when their score falls.
type MemoryItem struct {
	ID             int64
	Scope          string
	Content        string
	Importance     int
	AccessCount    int
	CoOccurrences  int
	Score          float64
	LastAccessedAt *time.Time
	SourceSession  string
	CreatedAt      int64
	UpdatedAt      int64
}

// defaultLearningImportance is assigned to learnings arriving from
// checkpoints; nothing in the checkpoint format carries importance.
const defaultLearningImportance = 3

// RouteLearnings stores checkpoint learnings as memory items. Duplicate
// content within a scope is counted as a co-occurrence rather than
// re-inserted. Returns the number of new items created.
func (db *DB) RouteLearnings(scope, sessionID string, learnings []string) (int, error) {
	now := time.Now().UnixMilli()
	created := 0
	for _, l := range learnings {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}

		var id int64
		err := db.QueryRow(
			"SELECT id FROM memory_items WHERE scope = ? AND content = ?", scope, l,
		).Scan(&id)
		switch {
		case err == sql.ErrNoRows:
			if _, err := db.Exec(`
				INSERT INTO memory_items (scope, content, importance, score, source_session, created_at, updated_at)
				VALUES (?, ?, ?, 1.0, ?, ?, ?)
			`, scope, l, defaultLearningImportance, sessionID, now, now); err != nil {
				return created, fmt.Errorf("insert learning: %w", err)
			}
			created++
		case err != nil:
			return created, fmt.Errorf("check learning: %w", err)
		default:
			// Seen again — counts as a co-occurrence, not a new item
			if _, err := db.Exec(`
				UPDATE memory_items SET co_occurrences = co_occurrences + 1, updated_at = ? WHERE id = ?
			`, now, id); err != nil {
				return created, fmt.Errorf("update learning: %w", err)
			}
		}
	}
	return created, nil
}

// TouchMemory records a retrieval of a memory item.
func (db *DB) TouchMemory(id int64) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		UPDATE memory_items SET access_count = access_count + 1, last_accessed_at = ?, updated_at = ?
		WHERE id = ?
	`, now, now, id)
	if err != nil {
		return fmt.Errorf("touch memory %d: %w", id, err)
	}
	return nil
}

// RescoreMemories recomputes every item's score from the decay formulas.
// Returns the number of items rescored.
func (db *DB) RescoreMemories(now time.Time) (int, error) {
	items, err := db.ListMemories("")
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, it := range items {
		ref := time.UnixMilli(it.CreatedAt)
		if it.LastAccessedAt != nil {
			ref = *it.LastAccessedAt
		}
		days := now.Sub(ref).Hours() / 24
		if days < 0 {
			days = 0
		}
		score := decay.ComputeScore(it.Importance, it.AccessCount, days, it.CoOccurrences)
		if score == it.Score {
			continue
		}
		if _, err := db.Exec(`UPDATE memory_items SET score = ? WHERE id = ?`, score, it.ID); err != nil {
			return updated, fmt.Errorf("rescore memory %d: %w", it.ID, err)
		}
		updated++
	}
	return updated, nil
}

// PruneMemories deletes items scoring under floor, unless immune. Critical
// items (importance 5) and recently-active items survive regardless of score.
// Returns the number of items removed.
func (db *DB) PruneMemories(now time.Time, floor float64) (int, error) {
	items, err := db.ListMemories("")
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, it := range items {
		if it.Score >= floor {
			continue
		}
		if decay.IsImmune(it.Importance, it.AccessCount, it.LastAccessedAt, now) {
			continue
		}
		if _, err := db.Exec(`DELETE FROM memory_items WHERE id = ?`, it.ID); err != nil {
			return removed, fmt.Errorf("prune memory %d: %w", it.ID, err)
		}
		removed++
	}
	return removed, nil
}

// ListMemories returns items for a scope (all scopes when empty), highest
// score first.
func (db *DB) ListMemories(scope string) ([]MemoryItem, error) {
	query := `
		SELECT id, scope, content, importance, access_count, co_occurrences, score,
			last_accessed_at, source_session, created_at, updated_at
		FROM memory_items`
	var args []any
	if scope != "" {
		query += ` WHERE scope = ?`
		args = append(args, scope)
	}
	query += ` ORDER BY score DESC`

	rows, err := db.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list memories: %w", err)
	}
	defer rows.Close()

	var items []MemoryItem
	for rows.Next() {
		var it MemoryItem
		var lastAccess sql.NullInt64
		var source sql.NullString
		if err := rows.Scan(&it.ID, &it.Scope, &it.Content, &it.Importance, &it.AccessCount,
			&it.CoOccurrences, &it.Score, &lastAccess, &source, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan memory item: %w", err)
		}
		if lastAccess.Valid {
			t := time.UnixMilli(lastAccess.Int64)
			it.LastAccessedAt = &t
		}
		it.SourceSession = source.String
		items = append(items, it)
	}
	return items, rows.Err()
}
