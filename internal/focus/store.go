package focus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrNotFound is returned when an edit names a session id that is not in
// the collection.
var ErrNotFound = errors.New("session not found")

// Table is the persistence collaborator for sessions. Add assigns and
// returns the record id; Delete must tolerate ids that no longer exist;
// All returns records in raw persisted order, oldest first.
type Table interface {
	Add(ctx context.Context, s *Session) (string, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]Session, error)
}

// Store owns the canonical session collection, kept most-recent-first.
type Store struct {
	table  Table
	logger *slog.Logger

	mu       sync.RWMutex
	sessions []Session
	loading  bool
}

// NewStore creates an empty session store over the given table.
func NewStore(table Table, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{table: table, logger: logger}
}

// Load replaces the collection with the persisted records, reversed so the
// newest session sorts first. Failures are logged rather than returned and
// the loading flag is cleared on every path.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	sessions, err := s.table.All(ctx)
	if err != nil {
		s.logger.Error("load sessions", slog.String("error", err.Error()))
		return
	}
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}

	s.mu.Lock()
	s.sessions = sessions
	s.mu.Unlock()
}

// Loading reports whether a bulk load is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Add persists a new session and prepends it to the collection, keeping
// newest-first order. The id is assigned by the table.
func (s *Store) Add(ctx context.Context, tag string, start, end time.Time) (Session, error) {
	sess := Session{Tag: tag, StartTime: start, EndTime: end}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.table.Add(ctx, &sess)
	if err != nil {
		return Session{}, fmt.Errorf("add session: %w", err)
	}
	sess.ID = id
	s.sessions = append([]Session{sess}, s.sessions...)
	return sess, nil
}

// Remove permanently deletes a session. Removing an id that is already
// gone is a no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.table.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			break
		}
	}
	return nil
}

// Patch holds optional replacement values for Edit; nil fields keep the
// stored value.
type Patch struct {
	Tag       *string
	StartTime *time.Time
	EndTime   *time.Time
}

// Edit merges patch into the stored session and persists the result. The
// session keeps its position in the collection.
func (s *Store) Edit(ctx context.Context, id string, patch Patch) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Session{}, ErrNotFound
	}

	sess := s.sessions[i]
	if patch.Tag != nil {
		sess.Tag = *patch.Tag
	}
	if patch.StartTime != nil {
		sess.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		sess.EndTime = *patch.EndTime
	}

	if err := s.table.Save(ctx, &sess); err != nil {
		return Session{}, fmt.Errorf("update session: %w", err)
	}
	s.sessions[i] = sess
	return sess, nil
}

// Sessions returns a copy of the canonical collection, newest first.
func (s *Store) Sessions() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Session(nil), s.sessions...)
}

// Get returns one session by id.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.sessions[i], true
	}
	return Session{}, false
}

// TodayTotal sums the durations of sessions that started strictly after
// the local midnight preceding now. A session started exactly at midnight
// does not count.
func (s *Store) TodayTotal(now time.Time) time.Duration {
	midnight := startOfDay(now)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var total time.Duration
	for _, sess := range s.sessions {
		if sess.StartTime.After(midnight) {
			total += sess.Duration()
		}
	}
	return total
}

// Last7DaysTotal sums the durations of sessions whose start falls inside
// the trailing seven-day window [now-7d, now], inclusive on both ends.
func (s *Store) Last7DaysTotal(now time.Time) time.Duration {
	from := now.Add(-7 * 24 * time.Hour)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var total time.Duration
	for _, sess := range s.sessions {
		if !sess.StartTime.Before(from) && !sess.StartTime.After(now) {
			total += sess.Duration()
		}
	}
	return total
}

// indexLocked returns the position of id in the collection, or -1. Callers
// must hold the lock.
func (s *Store) indexLocked(id string) int {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return i
		}
	}
	return -1
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
