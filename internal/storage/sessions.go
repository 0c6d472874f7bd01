package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BrazeDaGreat/bit-focus-sub001/internal/focus"
)

// SessionTable persists focus session records.
type SessionTable struct {
	db *sql.DB
}

// Add inserts rec under a fresh id and returns that id.
func (t *SessionTable) Add(ctx context.Context, rec *focus.Session) (string, error) {
	id := newID()
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO focus_sessions (id, tag, start_time, end_time)
		VALUES (?, ?, ?, ?)
	`, id, rec.Tag, rec.StartTime, rec.EndTime)
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	return id, nil
}

// Save upserts the full record by id, keeping its insertion position so
// the engine's newest-first reversal stays stable across edits.
func (t *SessionTable) Save(ctx context.Context, rec *focus.Session) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO focus_sessions (id, tag, start_time, end_time)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tag=excluded.tag, start_time=excluded.start_time, end_time=excluded.end_time
	`, rec.ID, rec.Tag, rec.StartTime, rec.EndTime)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete removes the record with the given id, if it exists.
func (t *SessionTable) Delete(ctx context.Context, id string) error {
	if _, err := t.db.ExecContext(ctx, `DELETE FROM focus_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// All returns every record in insertion order, oldest first.
func (t *SessionTable) All(ctx context.Context) ([]focus.Session, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, tag, start_time, end_time
		FROM focus_sessions ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []focus.Session
	for rows.Next() {
		var rec focus.Session
		if err := rows.Scan(&rec.ID, &rec.Tag, &rec.StartTime, &rec.EndTime); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}
