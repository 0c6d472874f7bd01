package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BrazeDaGreat/bit-focus-sub001/internal/project"
)

// MilestoneTable persists milestone records.
type MilestoneTable struct {
	db *sql.DB
}

// Add inserts rec under a fresh id and returns that id.
func (t *MilestoneTable) Add(ctx context.Context, rec *project.Milestone) (string, error) {
	id := newID()
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO milestones (id, project_id, title, status, deadline, budget, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, rec.ProjectID, rec.Title, rec.Status, rec.Deadline, rec.Budget, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("insert milestone: %w", err)
	}
	return id, nil
}

// Save upserts the full record by id.
func (t *MilestoneTable) Save(ctx context.Context, rec *project.Milestone) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO milestones (id, project_id, title, status, deadline, budget, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id=excluded.project_id, title=excluded.title, status=excluded.status,
			deadline=excluded.deadline, budget=excluded.budget,
			created_at=excluded.created_at, updated_at=excluded.updated_at
	`, rec.ID, rec.ProjectID, rec.Title, rec.Status, rec.Deadline, rec.Budget, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save milestone: %w", err)
	}
	return nil
}

// Delete removes the record with the given id, if it exists.
func (t *MilestoneTable) Delete(ctx context.Context, id string) error {
	if _, err := t.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete milestone: %w", err)
	}
	return nil
}

// DeleteByProject removes every milestone under the given project.
func (t *MilestoneTable) DeleteByProject(ctx context.Context, projectID string) error {
	if _, err := t.db.ExecContext(ctx, `DELETE FROM milestones WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("delete milestones by project: %w", err)
	}
	return nil
}

// All returns every record in insertion order.
func (t *MilestoneTable) All(ctx context.Context) ([]project.Milestone, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, project_id, title, status, deadline, budget, created_at, updated_at
		FROM milestones ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("query milestones: %w", err)
	}
	defer rows.Close()

	var out []project.Milestone
	for rows.Next() {
		var (
			rec      project.Milestone
			deadline sql.NullTime
		)
		if err := rows.Scan(&rec.ID, &rec.ProjectID, &rec.Title, &rec.Status, &deadline, &rec.Budget, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan milestone: %w", err)
		}
		if deadline.Valid {
			rec.Deadline = deadline.Time
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate milestones: %w", err)
	}
	return out, nil
}
