// Package snapshot serializes the full data set to a single YAML file
// and restores it through the persistence upsert path. Snapshots are the
// portability story for a local-first tracker: back up, move machines,
// inspect your data with any editor.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/BrazeDaGreat/bit-focus-sub001/internal/focus"
	"github.com/BrazeDaGreat/bit-focus-sub001/internal/project"
	"github.com/BrazeDaGreat/bit-focus-sub001/internal/task"
)

// Version identifies the snapshot file format.
const Version = "1"

// Snapshot is the full exported state.
type Snapshot struct {
	Version    string              `yaml:"version"`
	ExportedAt time.Time           `yaml:"exported_at"`
	Tasks      []task.Task         `yaml:"tasks"`
	Sessions   []focus.Session     `yaml:"sessions"`
	Projects   []project.Project   `yaml:"projects"`
	Milestones []project.Milestone `yaml:"milestones"`
	Issues     []project.Issue     `yaml:"issues"`
}

// Capture builds a snapshot from the given collections, stamped with the
// current time.
func Capture(tasks []task.Task, sessions []focus.Session, projects []project.Project, milestones []project.Milestone, issues []project.Issue) *Snapshot {
	return &Snapshot{
		Version:    Version,
		ExportedAt: time.Now(),
		Tasks:      tasks,
		Sessions:   sessions,
		Projects:   projects,
		Milestones: milestones,
		Issues:     issues,
	}
}

// Write marshals snap and writes it atomically via a temp file rename, so
// a crash mid-write never leaves a truncated snapshot behind.
func Write(path string, snap *Snapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename snapshot: %w", err)
	}

	return nil
}

// Read loads a snapshot file.
func Read(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &snap, nil
}

// Destination bundles the tables a snapshot restores into.
type Destination struct {
	Tasks      task.Table
	Sessions   focus.Table
	Projects   project.ProjectTable
	Milestones project.MilestoneTable
	Issues     project.IssueTable
}

// Restore writes every record in snap through the tables' upsert path,
// preserving record ids and parent references. Parents restore before
// children so a partially restored database never holds an issue whose
// milestone is missing. Existing records with matching ids are
// overwritten; everything else is left alone.
func Restore(ctx context.Context, snap *Snapshot, dest Destination) error {
	for i := range snap.Projects {
		if snap.Projects[i].ID == "" {
			return fmt.Errorf("project %d has no id", i)
		}
		if err := dest.Projects.Save(ctx, &snap.Projects[i]); err != nil {
			return fmt.Errorf("restore project %s: %w", snap.Projects[i].ID, err)
		}
	}
	for i := range snap.Milestones {
		if snap.Milestones[i].ID == "" {
			return fmt.Errorf("milestone %d has no id", i)
		}
		if err := dest.Milestones.Save(ctx, &snap.Milestones[i]); err != nil {
			return fmt.Errorf("restore milestone %s: %w", snap.Milestones[i].ID, err)
		}
	}
	for i := range snap.Issues {
		if snap.Issues[i].ID == "" {
			return fmt.Errorf("issue %d has no id", i)
		}
		if err := dest.Issues.Save(ctx, &snap.Issues[i]); err != nil {
			return fmt.Errorf("restore issue %s: %w", snap.Issues[i].ID, err)
		}
	}
	for i := range snap.Tasks {
		if snap.Tasks[i].ID == "" {
			return fmt.Errorf("task %d has no id", i)
		}
		if err := dest.Tasks.Save(ctx, &snap.Tasks[i]); err != nil {
			return fmt.Errorf("restore task %s: %w", snap.Tasks[i].ID, err)
		}
	}
	for i := range snap.Sessions {
		if snap.Sessions[i].ID == "" {
			return fmt.Errorf("session %d has no id", i)
		}
		if err := dest.Sessions.Save(ctx, &snap.Sessions[i]); err != nil {
			return fmt.Errorf("restore session %s: %w", snap.Sessions[i].ID, err)
		}
	}
	return nil
}
