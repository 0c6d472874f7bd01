// Package storage persists the engine collections in a single SQLite
// database, one table per entity type. Record ids are assigned here, on
// insert. Bulk reads return rows in insertion order, which is the order
// the engines treat as canonical.
package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the shared database handle behind the typed tables.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dbPath and runs migrations. A
// leading ~ expands to the user's home directory.
func Open(dbPath string) (*Store, error) {
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// migrate creates the tables. Task columns added after the first release
// (priority, completed, completed_subtasks) stay nullable so databases
// written by older versions keep loading; the engines repair the gaps.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			task TEXT NOT NULL,
			subtasks TEXT,
			duedate DATETIME,
			tags TEXT,
			priority INTEGER,
			completed INTEGER,
			completed_subtasks TEXT
		);

		CREATE TABLE IF NOT EXISTS focus_sessions (
			id TEXT PRIMARY KEY,
			tag TEXT NOT NULL,
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'scheduled',
			version TEXT,
			notes TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS milestones (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			title TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'scheduled',
			deadline DATETIME,
			budget REAL NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS issues (
			id TEXT PRIMARY KEY,
			milestone_id TEXT NOT NULL,
			title TEXT NOT NULL,
			label TEXT NOT NULL DEFAULT 'chore',
			duedate DATETIME,
			status TEXT NOT NULL DEFAULT 'open',
			description TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_milestones_project ON milestones(project_id);
		CREATE INDEX IF NOT EXISTS idx_issues_milestone ON issues(milestone_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Tasks returns the task table.
func (s *Store) Tasks() *TaskTable {
	return &TaskTable{db: s.db}
}

// Sessions returns the focus session table.
func (s *Store) Sessions() *SessionTable {
	return &SessionTable{db: s.db}
}

// Projects returns the project table.
func (s *Store) Projects() *ProjectTable {
	return &ProjectTable{db: s.db}
}

// Milestones returns the milestone table.
func (s *Store) Milestones() *MilestoneTable {
	return &MilestoneTable{db: s.db}
}

// Issues returns the issue table.
func (s *Store) Issues() *IssueTable {
	return &IssueTable{db: s.db}
}

func newID() string {
	return uuid.New().String()
}
