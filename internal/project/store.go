package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Store-level errors.
var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrMilestoneNotFound = errors.New("milestone not found")
	ErrIssueNotFound     = errors.New("issue not found")
)

// ProjectTable is the persistence collaborator for projects. Add assigns
// and returns the record id; Delete must tolerate ids that no longer
// exist; All returns records in raw persisted order.
type ProjectTable interface {
	Add(ctx context.Context, p *Project) (string, error)
	Save(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]Project, error)
}

// MilestoneTable adds the project-scoped bulk delete the cascade needs.
type MilestoneTable interface {
	Add(ctx context.Context, m *Milestone) (string, error)
	Save(ctx context.Context, m *Milestone) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) error
	All(ctx context.Context) ([]Milestone, error)
}

// IssueTable adds the milestone-scoped bulk deletes the cascades need.
// DeleteByMilestones must treat an empty id list as a no-op.
type IssueTable interface {
	Add(ctx context.Context, i *Issue) (string, error)
	Save(ctx context.Context, i *Issue) error
	Delete(ctx context.Context, id string) error
	DeleteByMilestone(ctx context.Context, milestoneID string) error
	DeleteByMilestones(ctx context.Context, milestoneIDs []string) error
	All(ctx context.Context) ([]Issue, error)
}

// Store owns the three canonical collections of the hierarchy. Each
// mutation persists first and applies to memory only on success; cascades
// run their persistence steps in child-before-parent order so a failure
// partway through never leaves a persisted child pointing at a deleted
// parent. Cascade steps are delete-if-exists, so a retried cascade
// converges.
type Store struct {
	projectTable   ProjectTable
	milestoneTable MilestoneTable
	issueTable     IssueTable
	logger         *slog.Logger

	mu         sync.RWMutex
	projects   []Project
	milestones []Milestone
	issues     []Issue
	loading    bool
}

// NewStore creates an empty hierarchy store over the given tables.
func NewStore(projects ProjectTable, milestones MilestoneTable, issues IssueTable, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		projectTable:   projects,
		milestoneTable: milestones,
		issueTable:     issues,
		logger:         logger,
	}
}

// Load replaces all three collections with the persisted records. The
// three reads either all apply or none do, failures are logged rather
// than returned, and the loading flag is cleared on every path.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	projects, err := s.projectTable.All(ctx)
	if err != nil {
		s.logger.Error("load projects", slog.String("error", err.Error()))
		return
	}
	milestones, err := s.milestoneTable.All(ctx)
	if err != nil {
		s.logger.Error("load milestones", slog.String("error", err.Error()))
		return
	}
	issues, err := s.issueTable.All(ctx)
	if err != nil {
		s.logger.Error("load issues", slog.String("error", err.Error()))
		return
	}

	for i := range projects {
		projects[i].normalize()
	}
	for i := range milestones {
		milestones[i].normalize()
	}
	for i := range issues {
		issues[i].normalize()
	}

	s.mu.Lock()
	s.projects = projects
	s.milestones = milestones
	s.issues = issues
	s.mu.Unlock()
}

// Loading reports whether a bulk load is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// AddProjectRequest carries the caller-supplied fields of a new project.
type AddProjectRequest struct {
	Title   string
	Status  string
	Version string
	Notes   string
}

// AddProject persists a new project and appends it to the collection.
// Both timestamps are stamped with the same instant.
func (s *Store) AddProject(ctx context.Context, req AddProjectRequest) (Project, error) {
	now := time.Now()
	p := Project{
		Title:     req.Title,
		Status:    NormalizeStatus(req.Status),
		Version:   req.Version,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.projectTable.Add(ctx, &p)
	if err != nil {
		return Project{}, fmt.Errorf("add project: %w", err)
	}
	p.ID = id
	s.projects = append(s.projects, p)
	return p, nil
}

// ProjectPatch holds optional replacement values for UpdateProject; nil
// fields keep the stored value.
type ProjectPatch struct {
	Title   *string
	Status  *string
	Version *string
	Notes   *string
}

// UpdateProject merges patch into the stored project, refreshes
// UpdatedAt, and persists the result. Child mutations never touch the
// parent's UpdatedAt; only direct updates do.
func (s *Store) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.projectIndexLocked(id)
	if i < 0 {
		return Project{}, ErrProjectNotFound
	}

	p := s.projects[i]
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Status != nil {
		p.Status = NormalizeStatus(*patch.Status)
	}
	if patch.Version != nil {
		p.Version = *patch.Version
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}
	p.UpdatedAt = time.Now()

	if err := s.projectTable.Save(ctx, &p); err != nil {
		return Project{}, fmt.Errorf("update project: %w", err)
	}
	s.projects[i] = p
	return p, nil
}

// DeleteProject removes a project and everything under it. Persistence
// runs issues first, then milestones, then the project; the in-memory
// collections change only after every step succeeds. Deleting an id that
// is already gone is a no-op.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	gone := make(map[string]bool)
	var milestoneIDs []string
	for _, m := range s.milestones {
		if m.ProjectID == id {
			gone[m.ID] = true
			milestoneIDs = append(milestoneIDs, m.ID)
		}
	}

	if len(milestoneIDs) > 0 {
		if err := s.issueTable.DeleteByMilestones(ctx, milestoneIDs); err != nil {
			return fmt.Errorf("delete project issues: %w", err)
		}
	}
	if err := s.milestoneTable.DeleteByProject(ctx, id); err != nil {
		return fmt.Errorf("delete project milestones: %w", err)
	}
	if err := s.projectTable.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	issues := make([]Issue, 0, len(s.issues))
	for _, iss := range s.issues {
		if !gone[iss.MilestoneID] {
			issues = append(issues, iss)
		}
	}
	s.issues = issues

	milestones := make([]Milestone, 0, len(s.milestones))
	for _, m := range s.milestones {
		if m.ProjectID != id {
			milestones = append(milestones, m)
		}
	}
	s.milestones = milestones

	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			break
		}
	}
	return nil
}

// AddMilestoneRequest carries the caller-supplied fields of a new
// milestone. Budget clamps up to zero.
type AddMilestoneRequest struct {
	ProjectID string
	Title     string
	Status    string
	Deadline  time.Time
	Budget    float64
}

// AddMilestone persists a new milestone under an existing project and
// appends it to the collection.
func (s *Store) AddMilestone(ctx context.Context, req AddMilestoneRequest) (Milestone, error) {
	now := time.Now()
	m := Milestone{
		ProjectID: req.ProjectID,
		Title:     req.Title,
		Status:    NormalizeStatus(req.Status),
		Deadline:  req.Deadline,
		Budget:    req.Budget,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if m.Budget < 0 {
		m.Budget = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.projectIndexLocked(req.ProjectID) < 0 {
		return Milestone{}, ErrProjectNotFound
	}

	id, err := s.milestoneTable.Add(ctx, &m)
	if err != nil {
		return Milestone{}, fmt.Errorf("add milestone: %w", err)
	}
	m.ID = id
	s.milestones = append(s.milestones, m)
	return m, nil
}

// MilestonePatch holds optional replacement values for UpdateMilestone;
// nil fields keep the stored value.
type MilestonePatch struct {
	Title    *string
	Status   *string
	Deadline *time.Time
	Budget   *float64
}

// UpdateMilestone merges patch into the stored milestone, refreshes
// UpdatedAt, and persists the result.
func (s *Store) UpdateMilestone(ctx context.Context, id string, patch MilestonePatch) (Milestone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.milestoneIndexLocked(id)
	if i < 0 {
		return Milestone{}, ErrMilestoneNotFound
	}

	m := s.milestones[i]
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Status != nil {
		m.Status = NormalizeStatus(*patch.Status)
	}
	if patch.Deadline != nil {
		m.Deadline = *patch.Deadline
	}
	if patch.Budget != nil {
		m.Budget = *patch.Budget
		if m.Budget < 0 {
			m.Budget = 0
		}
	}
	m.UpdatedAt = time.Now()

	if err := s.milestoneTable.Save(ctx, &m); err != nil {
		return Milestone{}, fmt.Errorf("update milestone: %w", err)
	}
	s.milestones[i] = m
	return m, nil
}

// DeleteMilestone removes a milestone and its issues. Persistence runs
// issues first, then the milestone; memory changes only after both steps
// succeed. Deleting an id that is already gone is a no-op.
func (s *Store) DeleteMilestone(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.issueTable.DeleteByMilestone(ctx, id); err != nil {
		return fmt.Errorf("delete milestone issues: %w", err)
	}
	if err := s.milestoneTable.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete milestone: %w", err)
	}

	issues := make([]Issue, 0, len(s.issues))
	for _, iss := range s.issues {
		if iss.MilestoneID != id {
			issues = append(issues, iss)
		}
	}
	s.issues = issues

	for i := range s.milestones {
		if s.milestones[i].ID == id {
			s.milestones = append(s.milestones[:i], s.milestones[i+1:]...)
			break
		}
	}
	return nil
}

// AddIssueRequest carries the caller-supplied fields of a new issue.
type AddIssueRequest struct {
	MilestoneID string
	Title       string
	Label       string
	DueDate     time.Time
	Description string
}

// AddIssue persists a new issue under an existing milestone and appends
// it to the collection. Every issue starts open; unknown labels fall back
// to chore.
func (s *Store) AddIssue(ctx context.Context, req AddIssueRequest) (Issue, error) {
	now := time.Now()
	iss := Issue{
		MilestoneID: req.MilestoneID,
		Title:       req.Title,
		Label:       NormalizeLabel(req.Label),
		DueDate:     req.DueDate,
		Status:      IssueOpen,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.milestoneIndexLocked(req.MilestoneID) < 0 {
		return Issue{}, ErrMilestoneNotFound
	}

	id, err := s.issueTable.Add(ctx, &iss)
	if err != nil {
		return Issue{}, fmt.Errorf("add issue: %w", err)
	}
	iss.ID = id
	s.issues = append(s.issues, iss)
	return iss, nil
}

// IssuePatch holds optional replacement values for UpdateIssue; nil
// fields keep the stored value.
type IssuePatch struct {
	Title       *string
	Label       *string
	DueDate     *time.Time
	Status      *string
	Description *string
}

// UpdateIssue merges patch into the stored issue, refreshes UpdatedAt,
// and persists the result. Patched labels and statuses are normalized the
// same way adds are.
func (s *Store) UpdateIssue(ctx context.Context, id string, patch IssuePatch) (Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.issueIndexLocked(id)
	if i < 0 {
		return Issue{}, ErrIssueNotFound
	}

	iss := s.issues[i]
	if patch.Title != nil {
		iss.Title = *patch.Title
	}
	if patch.Label != nil {
		iss.Label = NormalizeLabel(*patch.Label)
	}
	if patch.DueDate != nil {
		iss.DueDate = *patch.DueDate
	}
	if patch.Status != nil {
		iss.Status = NormalizeIssueStatus(*patch.Status)
	}
	if patch.Description != nil {
		iss.Description = *patch.Description
	}
	iss.UpdatedAt = time.Now()

	if err := s.issueTable.Save(ctx, &iss); err != nil {
		return Issue{}, fmt.Errorf("update issue: %w", err)
	}
	s.issues[i] = iss
	return iss, nil
}

// DeleteIssue removes one issue. Deleting an id that is already gone is a
// no-op.
func (s *Store) DeleteIssue(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.issueTable.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete issue: %w", err)
	}
	for i := range s.issues {
		if s.issues[i].ID == id {
			s.issues = append(s.issues[:i], s.issues[i+1:]...)
			break
		}
	}
	return nil
}

// Projects returns a copy of the project collection.
func (s *Store) Projects() []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Project(nil), s.projects...)
}

// Milestones returns a copy of the milestone collection.
func (s *Store) Milestones() []Milestone {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Milestone(nil), s.milestones...)
}

// Issues returns a copy of the issue collection.
func (s *Store) Issues() []Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Issue(nil), s.issues...)
}

// GetProject returns one project by id.
func (s *Store) GetProject(id string) (Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.projectIndexLocked(id); i >= 0 {
		return s.projects[i], true
	}
	return Project{}, false
}

// GetMilestone returns one milestone by id.
func (s *Store) GetMilestone(id string) (Milestone, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.milestoneIndexLocked(id); i >= 0 {
		return s.milestones[i], true
	}
	return Milestone{}, false
}

// GetIssue returns one issue by id.
func (s *Store) GetIssue(id string) (Issue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.issueIndexLocked(id); i >= 0 {
		return s.issues[i], true
	}
	return Issue{}, false
}

// MilestonesByProject returns the milestones under one project.
func (s *Store) MilestonesByProject(projectID string) []Milestone {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.milestonesByProjectLocked(projectID)
}

// IssuesByMilestone returns the issues under one milestone.
func (s *Store) IssuesByMilestone(milestoneID string) []Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.issuesByMilestoneLocked(milestoneID)
}

func (s *Store) milestonesByProjectLocked(projectID string) []Milestone {
	var out []Milestone
	for _, m := range s.milestones {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	return out
}

func (s *Store) issuesByMilestoneLocked(milestoneID string) []Issue {
	var out []Issue
	for _, iss := range s.issues {
		if iss.MilestoneID == milestoneID {
			out = append(out, iss)
		}
	}
	return out
}

func (s *Store) projectIndexLocked(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) milestoneIndexLocked(id string) int {
	for i := range s.milestones {
		if s.milestones[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) issueIndexLocked(id string) int {
	for i := range s.issues {
		if s.issues[i].ID == id {
			return i
		}
	}
	return -1
}
