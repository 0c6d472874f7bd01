package task

import "time"

// Priority bounds. Out-of-range values are clamped, never rejected.
const (
	MinPriority = 1
	MaxPriority = 4
)

// Task is a to-do item with independent completion tracking for the task
// itself and for each of its subtasks.
type Task struct {
	ID                string    `yaml:"id" json:"id"`
	Text              string    `yaml:"task" json:"task"`
	Subtasks          []string  `yaml:"subtasks,omitempty" json:"subtasks"`
	DueDate           time.Time `yaml:"duedate" json:"duedate"`
	Tags              []string  `yaml:"tags,omitempty" json:"tags"`
	Priority          int       `yaml:"priority" json:"priority"`
	Completed         bool      `yaml:"completed" json:"completed"`
	CompletedSubtasks []bool    `yaml:"completed_subtasks,omitempty" json:"completedSubtasks"`
}

// ClampPriority forces p into [MinPriority, MaxPriority].
func ClampPriority(p int) int {
	if p < MinPriority {
		return MinPriority
	}
	if p > MaxPriority {
		return MaxPriority
	}
	return p
}

// normalize repairs records that predate newer fields: a missing priority is
// a zero value and clamps up to the default, tags are deduplicated, and
// CompletedSubtasks is resized to stay parallel with Subtasks.
func (t *Task) normalize() {
	t.Priority = ClampPriority(t.Priority)
	t.Tags = dedupeTags(t.Tags)
	t.CompletedSubtasks = resizeCompleted(t.CompletedSubtasks, len(t.Subtasks))
}

// resizeCompleted grows done with false entries or truncates it so its
// length equals n. The input is returned untouched when already sized.
func resizeCompleted(done []bool, n int) []bool {
	if len(done) == n {
		return done
	}
	out := make([]bool, n)
	copy(out, done)
	return out
}

// dedupeTags drops repeated tags, keeping first-seen order. Tags are a set.
func dedupeTags(tags []string) []string {
	if len(tags) < 2 {
		return tags
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
