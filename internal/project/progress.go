package project

import "math"

// MilestoneWithProgress pairs a milestone with its derived completion
// percentage.
type MilestoneWithProgress struct {
	Milestone
	Progress int `json:"progress"`
}

// ProjectWithStats pairs a project with its derived rollups.
type ProjectWithStats struct {
	Project
	Progress    int     `json:"progress"`
	TotalBudget float64 `json:"totalBudget"`
}

// progressOf returns the percentage of closed issues, rounded; 0 for an
// empty list.
func progressOf(issues []Issue) int {
	if len(issues) == 0 {
		return 0
	}
	closed := 0
	for _, iss := range issues {
		if iss.Status == IssueClose {
			closed++
		}
	}
	return int(math.Round(100 * float64(closed) / float64(len(issues))))
}

// MilestoneProgress returns the completion percentage of one milestone.
// An unknown id reads as an empty milestone, progress 0.
func (s *Store) MilestoneProgress(milestoneID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return progressOf(s.issuesByMilestoneLocked(milestoneID))
}

// MilestonesWithProgress returns the milestones under one project, each
// paired with its progress. The numbers are recomputed from the canonical
// collections on every call, so they can never drift from the issue state
// after concurrent edits.
func (s *Store) MilestonesWithProgress(projectID string) []MilestoneWithProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.milestonesWithProgressLocked(projectID)
}

func (s *Store) milestonesWithProgressLocked(projectID string) []MilestoneWithProgress {
	ms := s.milestonesByProjectLocked(projectID)
	out := make([]MilestoneWithProgress, 0, len(ms))
	for _, m := range ms {
		out = append(out, MilestoneWithProgress{
			Milestone: m,
			Progress:  progressOf(s.issuesByMilestoneLocked(m.ID)),
		})
	}
	return out
}

// ProjectStats returns one project with its derived rollups: progress is
// the rounded mean of the child milestone progresses (0 with no
// milestones), TotalBudget the plain sum of child budgets.
func (s *Store) ProjectStats(id string) (ProjectWithStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.projectIndexLocked(id)
	if i < 0 {
		return ProjectWithStats{}, false
	}
	return s.projectStatsLocked(s.projects[i]), true
}

// ProjectsWithStats returns every project paired with its rollups.
func (s *Store) ProjectsWithStats() []ProjectWithStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ProjectWithStats, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, s.projectStatsLocked(p))
	}
	return out
}

func (s *Store) projectStatsLocked(p Project) ProjectWithStats {
	ms := s.milestonesWithProgressLocked(p.ID)
	stats := ProjectWithStats{Project: p}
	if len(ms) == 0 {
		return stats
	}
	sum := 0
	for _, m := range ms {
		sum += m.Progress
		stats.TotalBudget += m.Budget
	}
	stats.Progress = int(math.Round(float64(sum) / float64(len(ms))))
	return stats
}
