package focus

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrMockTable is returned by mock tables switched into failure mode.
var ErrMockTable = errors.New("mock table error")

// MockTable implements Table for testing. Records live in memory; ids are
// assigned sequentially. Individual calls can be overridden via the Func
// fields or forced to fail via the Fail switches.
type MockTable struct {
	mu      sync.Mutex
	Records []Session
	nextID  int

	AddFunc    func(ctx context.Context, s *Session) (string, error)
	SaveFunc   func(ctx context.Context, s *Session) error
	DeleteFunc func(ctx context.Context, id string) error
	AllFunc    func(ctx context.Context) ([]Session, error)

	AddCount    int
	SaveCount   int
	DeleteCount int
	AllCount    int

	FailAdd    bool
	FailSave   bool
	FailDelete bool
	FailAll    bool
}

func NewMockTable() *MockTable {
	return &MockTable{}
}

func (m *MockTable) Add(ctx context.Context, s *Session) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AddCount++
	if m.AddFunc != nil {
		return m.AddFunc(ctx, s)
	}
	if m.FailAdd {
		return "", ErrMockTable
	}

	m.nextID++
	rec := *s
	rec.ID = fmt.Sprintf("session-%d", m.nextID)
	m.Records = append(m.Records, rec)
	return rec.ID, nil
}

func (m *MockTable) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCount++
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, s)
	}
	if m.FailSave {
		return ErrMockTable
	}

	for i := range m.Records {
		if m.Records[i].ID == s.ID {
			m.Records[i] = *s
			return nil
		}
	}
	m.Records = append(m.Records, *s)
	return nil
}

func (m *MockTable) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCount++
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

func (m *MockTable) All(ctx context.Context) ([]Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AllCount++
	if m.AllFunc != nil {
		return m.AllFunc(ctx)
	}
	if m.FailAll {
		return nil, ErrMockTable
	}
	return append([]Session(nil), m.Records...), nil
}

// Record returns the stored copy of id, if any.
func (m *MockTable) Record(id string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range m.Records {
		if rec.ID == id {
			return rec, true
		}
	}
	return Session{}, false
}
