package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/BrazeDaGreat/bit-focus-sub001/internal/project"
)

// IssueTable persists issue records.
type IssueTable struct {
	db *sql.DB
}

// Add inserts rec under a fresh id and returns that id.
func (t *IssueTable) Add(ctx context.Context, rec *project.Issue) (string, error) {
	id := newID()
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO issues (id, milestone_id, title, label, duedate, status, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, rec.MilestoneID, rec.Title, rec.Label, rec.DueDate, rec.Status, rec.Description, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("insert issue: %w", err)
	}
	return id, nil
}

// Save upserts the full record by id.
func (t *IssueTable) Save(ctx context.Context, rec *project.Issue) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO issues (id, milestone_id, title, label, duedate, status, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			milestone_id=excluded.milestone_id, title=excluded.title, label=excluded.label,
			duedate=excluded.duedate, status=excluded.status, description=excluded.description,
			created_at=excluded.created_at, updated_at=excluded.updated_at
	`, rec.ID, rec.MilestoneID, rec.Title, rec.Label, rec.DueDate, rec.Status, rec.Description, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save issue: %w", err)
	}
	return nil
}

// Delete removes the record with the given id, if it exists.
func (t *IssueTable) Delete(ctx context.Context, id string) error {
	if _, err := t.db.ExecContext(ctx, `DELETE FROM issues WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete issue: %w", err)
	}
	return nil
}

// DeleteByMilestone removes every issue under the given milestone.
func (t *IssueTable) DeleteByMilestone(ctx context.Context, milestoneID string) error {
	if _, err := t.db.ExecContext(ctx, `DELETE FROM issues WHERE milestone_id = ?`, milestoneID); err != nil {
		return fmt.Errorf("delete issues by milestone: %w", err)
	}
	return nil
}

// DeleteByMilestones removes every issue under any of the given
// milestones. An empty id list is a no-op.
func (t *IssueTable) DeleteByMilestones(ctx context.Context, milestoneIDs []string) error {
	if len(milestoneIDs) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(milestoneIDs)), ",")
	args := make([]any, len(milestoneIDs))
	for i, id := range milestoneIDs {
		args[i] = id
	}
	query := fmt.Sprintf(`DELETE FROM issues WHERE milestone_id IN (%s)`, placeholders)
	if _, err := t.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete issues by milestones: %w", err)
	}
	return nil
}

// All returns every record in insertion order.
func (t *IssueTable) All(ctx context.Context) ([]project.Issue, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, milestone_id, title, label, duedate, status, description, created_at, updated_at
		FROM issues ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("query issues: %w", err)
	}
	defer rows.Close()

	var out []project.Issue
	for rows.Next() {
		var (
			rec         project.Issue
			due         sql.NullTime
			description sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.MilestoneID, &rec.Title, &rec.Label, &due, &rec.Status, &description, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		if due.Valid {
			rec.DueDate = due.Time
		}
		rec.Description = description.String
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate issues: %w", err)
	}
	return out, nil
}
