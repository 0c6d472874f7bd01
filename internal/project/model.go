// Package project keeps the three-level work hierarchy: projects own
// milestones, milestones own issues. Ownership is strict containment, so
// deleting a parent cascades through its children. Progress and budget
// rollups are derived on every read from the canonical collections and
// never stored.
package project

import "time"

// Project and milestone status values.
const (
	StatusScheduled = "scheduled"
	StatusActive    = "active"
	StatusClosed    = "closed"
)

// Issue status values.
const (
	IssueOpen  = "open"
	IssueClose = "close"
)

// Issue label values.
const (
	LabelBug         = "bug"
	LabelFeature     = "feature"
	LabelImprovement = "improvement"
	LabelQuestion    = "question"
	LabelChore       = "chore"
)

// NormalizeStatus maps s onto the known status set. Unknown values fall
// back to scheduled rather than being rejected.
func NormalizeStatus(s string) string {
	switch s {
	case StatusScheduled, StatusActive, StatusClosed:
		return s
	}
	return StatusScheduled
}

// NormalizeIssueStatus maps s onto the issue status set, defaulting to
// open.
func NormalizeIssueStatus(s string) string {
	if s == IssueClose {
		return IssueClose
	}
	return IssueOpen
}

// NormalizeLabel maps s onto the known label set, defaulting to chore.
func NormalizeLabel(s string) string {
	switch s {
	case LabelBug, LabelFeature, LabelImprovement, LabelQuestion, LabelChore:
		return s
	}
	return LabelChore
}

// Project is the root of the hierarchy.
type Project struct {
	ID        string    `yaml:"id" json:"id"`
	Title     string    `yaml:"title" json:"title"`
	Status    string    `yaml:"status" json:"status"` // scheduled, active, closed
	Version   string    `yaml:"version" json:"version"`
	Notes     string    `yaml:"notes,omitempty" json:"notes"`
	CreatedAt time.Time `yaml:"created_at" json:"createdAt"`
	UpdatedAt time.Time `yaml:"updated_at" json:"updatedAt"`
}

// Milestone belongs to exactly one project and cannot outlive it.
type Milestone struct {
	ID        string    `yaml:"id" json:"id"`
	ProjectID string    `yaml:"project_id" json:"projectId"`
	Title     string    `yaml:"title" json:"title"`
	Status    string    `yaml:"status" json:"status"` // scheduled, active, closed
	Deadline  time.Time `yaml:"deadline" json:"deadline"`
	Budget    float64   `yaml:"budget" json:"budget"`
	CreatedAt time.Time `yaml:"created_at" json:"createdAt"`
	UpdatedAt time.Time `yaml:"updated_at" json:"updatedAt"`
}

// Issue belongs to exactly one milestone and cannot outlive it.
type Issue struct {
	ID          string    `yaml:"id" json:"id"`
	MilestoneID string    `yaml:"milestone_id" json:"milestoneId"`
	Title       string    `yaml:"title" json:"title"`
	Label       string    `yaml:"label" json:"label"` // bug, feature, improvement, question, chore
	DueDate     time.Time `yaml:"duedate" json:"dueDate"`
	Status      string    `yaml:"status" json:"status"` // open, close
	Description string    `yaml:"description,omitempty" json:"description"`
	CreatedAt   time.Time `yaml:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `yaml:"updated_at" json:"updatedAt"`
}

func (p *Project) normalize() {
	p.Status = NormalizeStatus(p.Status)
}

func (m *Milestone) normalize() {
	m.Status = NormalizeStatus(m.Status)
	if m.Budget < 0 {
		m.Budget = 0
	}
}

func (i *Issue) normalize() {
	i.Status = NormalizeIssueStatus(i.Status)
	i.Label = NormalizeLabel(i.Label)
}
