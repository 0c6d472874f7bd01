package project

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrMockTable is returned by mock tables switched into failure mode.
var ErrMockTable = errors.New("mock table error")

// MockProjectTable implements ProjectTable for testing.
type MockProjectTable struct {
	mu      sync.Mutex
	Records []Project
	nextID  int

	AddFunc    func(ctx context.Context, p *Project) (string, error)
	SaveFunc   func(ctx context.Context, p *Project) error
	DeleteFunc func(ctx context.Context, id string) error
	AllFunc    func(ctx context.Context) ([]Project, error)

	FailAdd    bool
	FailSave   bool
	FailDelete bool
	FailAll    bool
}

func NewMockProjectTable() *MockProjectTable {
	return &MockProjectTable{}
}

func (m *MockProjectTable) Add(ctx context.Context, p *Project) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddFunc != nil {
		return m.AddFunc(ctx, p)
	}
	if m.FailAdd {
		return "", ErrMockTable
	}
	m.nextID++
	rec := *p
	rec.ID = fmt.Sprintf("project-%d", m.nextID)
	m.Records = append(m.Records, rec)
	return rec.ID, nil
}

func (m *MockProjectTable) Save(ctx context.Context, p *Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, p)
	}
	if m.FailSave {
		return ErrMockTable
	}
	for i := range m.Records {
		if m.Records[i].ID == p.ID {
			m.Records[i] = *p
			return nil
		}
	}
	m.Records = append(m.Records, *p)
	return nil
}

func (m *MockProjectTable) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	if m.FailDelete {
		return ErrMockTable
	}
	for i := range m.Records {
		if m.Records[i].ID == id {
			m.Records = append(m.Records[:i], m.Records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MockProjectTable) All(ctx context.Context) ([]Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AllFunc != nil {
		return m.AllFunc(ctx)
	}
	if m.FailAll {
		return nil, ErrMockTable
	}
	return append([]Project(nil), m.Records...), nil
}

// MockMilestoneTable implements MilestoneTable for testing.
type MockMilestoneTable struct {
	mu      sync.Mutex
	Records []Milestone
	nextID  int

	AddFunc             func(ctx context.Context, m *Milestone) (string, error)
	SaveFunc            func(ctx context.Context, m *Milestone) error
	DeleteFunc          func(ctx context.Context, id string) error
	DeleteByProjectFunc func(ctx context.Context, projectID string) error
	AllFunc             func(ctx context.Context) ([]Milestone, error)

	FailAdd             bool
	FailSave            bool
	FailDelete          bool
	FailDeleteByProject bool
	FailAll             bool
}

func NewMockMilestoneTable() *MockMilestoneTable {
	return &MockMilestoneTable{}
}

func (m *MockMilestoneTable) Add(ctx context.Context, ms *Milestone) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddFunc != nil {
		return m.AddFunc(ctx, ms)
	}
	if m.FailAdd {
		return "", ErrMockTable
	}
	m.nextID++
	rec := *ms
	rec.ID = fmt.Sprintf("milestone-%d", m.nextID)
	m.Records = append(m.Records, rec)
	return rec.ID, nil
}

func (m *MockMilestoneTable) Save(ctx context.Context, ms *Milestone) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, ms)
	}
	if m.FailSave {
		return ErrMockTable
	}
	for i := range m.Records {
		if m.Records[i].ID == ms.ID {
			m.Records[i] = *ms
			return nil
		}
	}
	m.Records = append(m.Records, *ms)
	return nil
}

func (m *MockMilestoneTable) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	if m.FailDelete {
		return ErrMockTable
	}
	for i := range m.Records {
		if m.Records[i].ID == id {
			m.Records = append(m.Records[:i], m.Records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MockMilestoneTable) DeleteByProject(ctx context.Context, projectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteByProjectFunc != nil {
		return m.DeleteByProjectFunc(ctx, projectID)
	}
	if m.FailDeleteByProject {
		return ErrMockTable
	}
	kept := m.Records[:0]
	for _, rec := range m.Records {
		if rec.ProjectID != projectID {
			kept = append(kept, rec)
		}
	}
	m.Records = kept
	return nil
}

func (m *MockMilestoneTable) All(ctx context.Context) ([]Milestone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AllFunc != nil {
		return m.AllFunc(ctx)
	}
	if m.FailAll {
		return nil, ErrMockTable
	}
	return append([]Milestone(nil), m.Records...), nil
}

// MockIssueTable implements IssueTable for testing.
type MockIssueTable struct {
	mu      sync.Mutex
	Records []Issue
	nextID  int

	AddFunc                func(ctx context.Context, i *Issue) (string, error)
	SaveFunc               func(ctx context.Context, i *Issue) error
	DeleteFunc             func(ctx context.Context, id string) error
	DeleteByMilestoneFunc  func(ctx context.Context, milestoneID string) error
	DeleteByMilestonesFunc func(ctx context.Context, milestoneIDs []string) error
	AllFunc                func(ctx context.Context) ([]Issue, error)

	FailAdd                bool
	FailSave               bool
	FailDelete             bool
	FailDeleteByMilestone  bool
	FailDeleteByMilestones bool
	FailAll                bool
}

func NewMockIssueTable() *MockIssueTable {
	return &MockIssueTable{}
}

func (m *MockIssueTable) Add(ctx context.Context, iss *Issue) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddFunc != nil {
		return m.AddFunc(ctx, iss)
	}
	if m.FailAdd {
		return "", ErrMockTable
	}
	m.nextID++
	rec := *iss
	rec.ID = fmt.Sprintf("issue-%d", m.nextID)
	m.Records = append(m.Records, rec)
	return rec.ID, nil
}

func (m *MockIssueTable) Save(ctx context.Context, iss *Issue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, iss)
	}
	if m.FailSave {
		return ErrMockTable
	}
	for i := range m.Records {
		if m.Records[i].ID == iss.ID {
			m.Records[i] = *iss
			return nil
		}
	}
	m.Records = append(m.Records, *iss)
	return nil
}

func (m *MockIssueTable) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	if m.FailDelete {
		return ErrMockTable
	}
	for i := range m.Records {
		if m.Records[i].ID == id {
			m.Records = append(m.Records[:i], m.Records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MockIssueTable) DeleteByMilestone(ctx context.Context, milestoneID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteByMilestoneFunc != nil {
		return m.DeleteByMilestoneFunc(ctx, milestoneID)
	}
	if m.FailDeleteByMilestone {
		return ErrMockTable
	}
	kept := m.Records[:0]
	for _, rec := range m.Records {
		if rec.MilestoneID != milestoneID {
			kept = append(kept, rec)
		}
	}
	m.Records = kept
	return nil
}

func (m *MockIssueTable) DeleteByMilestones(ctx context.Context, milestoneIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteByMilestonesFunc != nil {
		return m.DeleteByMilestonesFunc(ctx, milestoneIDs)
	}
	if m.FailDeleteByMilestones {
		return ErrMockTable
	}
	gone := make(map[string]bool, len(milestoneIDs))
	for _, id := range milestoneIDs {
		gone[id] = true
	}
	kept := m.Records[:0]
	for _, rec := range m.Records {
		if !gone[rec.MilestoneID] {
			kept = append(kept, rec)
		}
	}
	m.Records = kept
	return nil
}

func (m *MockIssueTable) All(ctx context.Context) ([]Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AllFunc != nil {
		return m.AllFunc(ctx)
	}
	if m.FailAll {
		return nil, ErrMockTable
	}
	return append([]Issue(nil), m.Records...), nil
}
