package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/BrazeDaGreat/bit-focus-sub001/internal/task"
)

// TaskTable persists task records. List columns (subtasks, tags,
// completed_subtasks) are stored as JSON text.
type TaskTable struct {
	db *sql.DB
}

// Add inserts rec under a fresh id and returns that id.
func (t *TaskTable) Add(ctx context.Context, rec *task.Task) (string, error) {
	id := newID()
	subtasksJSON, _ := json.Marshal(rec.Subtasks)
	tagsJSON, _ := json.Marshal(rec.Tags)
	doneJSON, _ := json.Marshal(rec.CompletedSubtasks)

	_, err := t.db.ExecContext(ctx, `
		INSERT INTO tasks (id, task, subtasks, duedate, tags, priority, completed, completed_subtasks)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, rec.Text, string(subtasksJSON), rec.DueDate, string(tagsJSON), rec.Priority, rec.Completed, string(doneJSON))
	if err != nil {
		return "", fmt.Errorf("insert task: %w", err)
	}
	return id, nil
}

// Save upserts the full record by id. The upsert keeps the row's original
// insertion position, so bulk reads stay in add order across edits.
func (t *TaskTable) Save(ctx context.Context, rec *task.Task) error {
	subtasksJSON, _ := json.Marshal(rec.Subtasks)
	tagsJSON, _ := json.Marshal(rec.Tags)
	doneJSON, _ := json.Marshal(rec.CompletedSubtasks)

	_, err := t.db.ExecContext(ctx, `
		INSERT INTO tasks (id, task, subtasks, duedate, tags, priority, completed, completed_subtasks)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			task=excluded.task, subtasks=excluded.subtasks, duedate=excluded.duedate,
			tags=excluded.tags, priority=excluded.priority, completed=excluded.completed,
			completed_subtasks=excluded.completed_subtasks
	`, rec.ID, rec.Text, string(subtasksJSON), rec.DueDate, string(tagsJSON), rec.Priority, rec.Completed, string(doneJSON))
	if err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// Delete removes the record with the given id, if it exists.
func (t *TaskTable) Delete(ctx context.Context, id string) error {
	if _, err := t.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// All returns every record in insertion order. Legacy rows with NULL
// priority, completed, or list columns come back with zero values for the
// engine to repair.
func (t *TaskTable) All(ctx context.Context) ([]task.Task, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, task, subtasks, duedate, tags, priority, completed, completed_subtasks
		FROM tasks ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var out []task.Task
	for rows.Next() {
		var (
			rec       task.Task
			subtasks  sql.NullString
			due       sql.NullTime
			tags      sql.NullString
			priority  sql.NullInt64
			completed sql.NullBool
			done      sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Text, &subtasks, &due, &tags, &priority, &completed, &done); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if subtasks.Valid {
			json.Unmarshal([]byte(subtasks.String), &rec.Subtasks)
		}
		if due.Valid {
			rec.DueDate = due.Time
		}
		if tags.Valid {
			json.Unmarshal([]byte(tags.String), &rec.Tags)
		}
		rec.Priority = int(priority.Int64)
		rec.Completed = completed.Bool
		if done.Valid {
			json.Unmarshal([]byte(done.String), &rec.CompletedSubtasks)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, nil
}
