package task

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
	ErrNotFound     = errors.New("task not found")
	ErrSubtaskIndex = errors.New("subtask index out of range")
)

// Table is the persistence collaborator for tasks. Add assigns and returns
// the record id; Save writes a full record by id; Delete must tolerate ids
// that no longer exist; All returns records in raw persisted order.
type Table interface {
	Add(ctx context.Context, t *Task) (string, error)
	Save(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]Task, error)
}

// Store owns the canonical task collection and the current search query.
type Store struct {
	table  Table
	logger *slog.Logger

	mu      sync.RWMutex
	tasks   []Task
	query   string
	loading bool
}

// NewStore creates an empty task store over the given table. The collection
// is populated by an explicit Load call.
func NewStore(table Table, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{table: table, logger: logger}
}

// Load replaces the collection with the persisted records. Failures are
// logged rather than returned, the previous in-memory state survives a
// failed load, and the loading flag is cleared on every path.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	tasks, err := s.table.All(ctx)
	if err != nil {
		s.logger.Error("load tasks", slog.String("error", err.Error()))
		return
	}
	for i := range tasks {
		tasks[i].normalize()
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
}

// Loading reports whether a bulk load is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// AddRequest carries the caller-supplied fields of a new task. A zero
// Priority clamps up to MinPriority, which doubles as the default.
type AddRequest struct {
	Text     string
	Subtasks []string
	DueDate  time.Time
	Tags     []string
	Priority int
}

// Add persists a new task and appends it to the collection. The task starts
// incomplete with every subtask incomplete; the id is assigned by the table.
func (s *Store) Add(ctx context.Context, req AddRequest) (Task, error) {
	t := Task{
		Text:              req.Text,
		Subtasks:          append([]string(nil), req.Subtasks...),
		DueDate:           req.DueDate,
		Tags:              dedupeTags(append([]string(nil), req.Tags...)),
		Priority:          ClampPriority(req.Priority),
		CompletedSubtasks: make([]bool, len(req.Subtasks)),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.table.Add(ctx, &t)
	if err != nil {
		return Task{}, fmt.Errorf("add task: %w", err)
	}
	t.ID = id
	s.tasks = append(s.tasks, t)
	return t, nil
}

// Remove permanently deletes a task. Completion is not deletion; this is
// the only way a task leaves the collection. Removing an id that is already
// gone is a no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.table.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	return nil
}

// Complete marks a task done. Subtask states are untouched.
func (s *Store) Complete(ctx context.Context, id string) error {
	return s.setCompleted(ctx, id, true)
}

// Uncomplete marks a task not done. Calling it on an already-incomplete
// task leaves the observable state unchanged.
func (s *Store) Uncomplete(ctx context.Context, id string) error {
	return s.setCompleted(ctx, id, false)
}

func (s *Store) setCompleted(ctx context.Context, id string, done bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	t := s.tasks[i]
	t.Completed = done
	if err := s.table.Save(ctx, &t); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	s.tasks[i] = t
	return nil
}

// Patch holds optional replacement values for Update; nil fields keep the
// stored value.
type Patch struct {
	Text     *string
	Subtasks *[]string
	DueDate  *time.Time
	Tags     *[]string
	Priority *int
}

// Update merges patch into the stored task and persists the result. When
// the subtask list changes length, CompletedSubtasks is resized before the
// persistence write so both layers stay parallel: new entries start false,
// removed entries are dropped.
func (s *Store) Update(ctx context.Context, id string, patch Patch) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}

	t := s.tasks[i]
	if patch.Text != nil {
		t.Text = *patch.Text
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	if patch.Tags != nil {
		t.Tags = dedupeTags(append([]string(nil), *patch.Tags...))
	}
	if patch.Priority != nil {
		t.Priority = ClampPriority(*patch.Priority)
	}
	if patch.Subtasks != nil {
		t.Subtasks = append([]string(nil), *patch.Subtasks...)
		t.CompletedSubtasks = resizeCompleted(t.CompletedSubtasks, len(t.Subtasks))
	}

	if err := s.table.Save(ctx, &t); err != nil {
		return Task{}, fmt.Errorf("update task: %w", err)
	}
	s.tasks[i] = t
	return t, nil
}

// SetSubtaskCompletion replaces the completion flag of one subtask.
func (s *Store) SetSubtaskCompletion(ctx context.Context, id string, index int, done bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	t := s.tasks[i]
	if index < 0 || index >= len(t.CompletedSubtasks) {
		return fmt.Errorf("%w: %d of %d", ErrSubtaskIndex, index, len(t.CompletedSubtasks))
	}

	flags := append([]bool(nil), t.CompletedSubtasks...)
	flags[index] = done
	t.CompletedSubtasks = flags
	if err := s.table.Save(ctx, &t); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	s.tasks[i] = t
	return nil
}

// SetQuery stores the search filter applied by the view functions.
func (s *Store) SetQuery(q string) {
	s.mu.Lock()
	s.query = q
	s.mu.Unlock()
}

// Query returns the current search filter.
func (s *Store) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Tasks returns a copy of the canonical collection, unfiltered.
func (s *Store) Tasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Task(nil), s.tasks...)
}

// Get returns one task by id.
func (s *Store) Get(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// indexLocked returns the position of id in the collection, or -1. Callers
// must hold the lock.
func (s *Store) indexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
