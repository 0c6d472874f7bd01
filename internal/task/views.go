package task

import (
	"sort"
	"strings"
	"time"
)

// TimeCategory buckets a task by its due date relative to the local
// calendar day.
type TimeCategory string

// Time buckets in display order.
const (
	CategoryOverdue   TimeCategory = "overdue"
	CategoryToday     TimeCategory = "today"
	CategoryTomorrow  TimeCategory = "tomorrow"
	CategoryNext7Days TimeCategory = "next7days"
	CategoryLater     TimeCategory = "later"
)

// TimeCategories lists every bucket in display order.
var TimeCategories = []TimeCategory{
	CategoryOverdue,
	CategoryToday,
	CategoryTomorrow,
	CategoryNext7Days,
	CategoryLater,
}

// UntaggedBucket collects tasks without tags in the tag view.
const UntaggedBucket = "Untagged"

// TimeGroup is one due-date bucket of the time view.
type TimeGroup struct {
	Category TimeCategory `json:"category"`
	Tasks    []Task       `json:"tasks"`
}

// TagGroup is one bucket of the tag view.
type TagGroup struct {
	Tag   string `json:"tag"`
	Tasks []Task `json:"tasks"`
}

// PriorityGroup is one bucket of the priority view.
type PriorityGroup struct {
	Priority int    `json:"priority"`
	Tasks    []Task `json:"tasks"`
}

// ActiveTasks returns the search-filtered tasks that are not completed.
// Search and completion filters compose; neither bypasses the other.
func (s *Store) ActiveTasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectLocked(false)
}

// CompletedTasks returns the search-filtered tasks that are completed.
func (s *Store) CompletedTasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectLocked(true)
}

// selectLocked returns the filtered tasks with the given completion state.
// Callers must hold at least the read lock.
func (s *Store) selectLocked(completed bool) []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.Completed == completed && matchesQuery(t, s.query) {
			out = append(out, t)
		}
	}
	return out
}

// GroupByTimeCategory buckets the active, search-filtered tasks by due date
// relative to now. Each task lands in exactly one bucket; all five buckets
// are returned in display order even when empty. Within a bucket tasks sort
// by priority descending, ties broken by the earlier due date.
func (s *Store) GroupByTimeCategory(now time.Time) []TimeGroup {
	s.mu.RLock()
	active := s.selectLocked(false)
	s.mu.RUnlock()

	today := startOfDay(now)
	byCat := make(map[TimeCategory][]Task, len(TimeCategories))
	for _, t := range active {
		c := categorize(t.DueDate, today)
		byCat[c] = append(byCat[c], t)
	}

	groups := make([]TimeGroup, 0, len(TimeCategories))
	for _, c := range TimeCategories {
		ts := byCat[c]
		sortByPriority(ts)
		groups = append(groups, TimeGroup{Category: c, Tasks: ts})
	}
	return groups
}

// GroupByTag buckets the active, filtered tasks under each of their tags; a
// task carrying several tags appears in each of those buckets, so the tag
// view is deliberately not a partition. Tagless tasks group under
// UntaggedBucket, which sorts last; other buckets are ordered
// alphabetically, case-insensitively. Sorting inside a bucket matches the
// time view.
func (s *Store) GroupByTag() []TagGroup {
	s.mu.RLock()
	active := s.selectLocked(false)
	s.mu.RUnlock()

	byTag := make(map[string][]Task)
	for _, t := range active {
		if len(t.Tags) == 0 {
			byTag[UntaggedBucket] = append(byTag[UntaggedBucket], t)
			continue
		}
		for _, tag := range t.Tags {
			byTag[tag] = append(byTag[tag], t)
		}
	}

	names := make([]string, 0, len(byTag))
	for name := range byTag {
		if name != UntaggedBucket {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	if _, ok := byTag[UntaggedBucket]; ok {
		names = append(names, UntaggedBucket)
	}

	groups := make([]TagGroup, 0, len(names))
	for _, name := range names {
		ts := byTag[name]
		sortByPriority(ts)
		groups = append(groups, TagGroup{Tag: name, Tasks: ts})
	}
	return groups
}

// GroupByPriority returns the four fixed priority buckets, highest first.
// Buckets are present even when empty; tasks inside each bucket sort by due
// date ascending.
func (s *Store) GroupByPriority() []PriorityGroup {
	s.mu.RLock()
	active := s.selectLocked(false)
	s.mu.RUnlock()

	byPriority := make(map[int][]Task, MaxPriority)
	for _, t := range active {
		p := ClampPriority(t.Priority)
		byPriority[p] = append(byPriority[p], t)
	}

	groups := make([]PriorityGroup, 0, MaxPriority)
	for p := MaxPriority; p >= MinPriority; p-- {
		ts := byPriority[p]
		sortByDueDate(ts)
		groups = append(groups, PriorityGroup{Priority: p, Tasks: ts})
	}
	return groups
}

// matchesQuery reports whether t matches the search query. Matching is
// case-insensitive substring containment. A query starting with '#' matches
// tags only; anything else matches the task text, any subtask, or any tag.
// A blank query matches everything.
func matchesQuery(t Task, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.HasPrefix(q, "#") {
		rest := strings.TrimPrefix(q, "#")
		for _, tag := range t.Tags {
			if strings.Contains(strings.ToLower(tag), rest) {
				return true
			}
		}
		return false
	}
	if strings.Contains(strings.ToLower(t.Text), q) {
		return true
	}
	for _, sub := range t.Subtasks {
		if strings.Contains(strings.ToLower(sub), q) {
			return true
		}
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// categorize assigns a due date to its bucket given today's local midnight.
func categorize(due time.Time, today time.Time) TimeCategory {
	day := startOfDay(due.In(today.Location()))
	switch {
	case day.Before(today):
		return CategoryOverdue
	case day.Equal(today):
		return CategoryToday
	case day.Equal(today.AddDate(0, 0, 1)):
		return CategoryTomorrow
	case !day.After(today.AddDate(0, 0, 7)):
		return CategoryNext7Days
	default:
		return CategoryLater
	}
}

// startOfDay returns midnight of t's calendar day in t's location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sortByPriority(ts []Task) {
	sort.SliceStable(ts, func(i, j int) bool {
		if ts[i].Priority != ts[j].Priority {
			return ts[i].Priority > ts[j].Priority
		}
		return ts[i].DueDate.Before(ts[j].DueDate)
	})
}

func sortByDueDate(ts []Task) {
	sort.SliceStable(ts, func(i, j int) bool {
		return ts[i].DueDate.Before(ts[j].DueDate)
	})
}
