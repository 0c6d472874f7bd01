package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BrazeDaGreat/bit-focus-sub001/internal/project"
)

// ProjectTable persists project records.
type ProjectTable struct {
	db *sql.DB
}

// Add inserts rec under a fresh id and returns that id.
func (t *ProjectTable) Add(ctx context.Context, rec *project.Project) (string, error) {
	id := newID()
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO projects (id, title, status, version, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, rec.Title, rec.Status, rec.Version, rec.Notes, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("insert project: %w", err)
	}
	return id, nil
}

// Save upserts the full record by id.
func (t *ProjectTable) Save(ctx context.Context, rec *project.Project) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO projects (id, title, status, version, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, status=excluded.status, version=excluded.version,
			notes=excluded.notes, created_at=excluded.created_at, updated_at=excluded.updated_at
	`, rec.ID, rec.Title, rec.Status, rec.Version, rec.Notes, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// Delete removes the record with the given id, if it exists.
func (t *ProjectTable) Delete(ctx context.Context, id string) error {
	if _, err := t.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// All returns every record in insertion order.
func (t *ProjectTable) All(ctx context.Context) ([]project.Project, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, title, status, version, notes, created_at, updated_at
		FROM projects ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var out []project.Project
	for rows.Next() {
		var (
			rec     project.Project
			version sql.NullString
			notes   sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Status, &version, &notes, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		rec.Version = version.String
		rec.Notes = notes.String
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return out, nil
}
