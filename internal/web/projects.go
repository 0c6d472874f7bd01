package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BrazeDaGreat/bit-focus-sub001/internal/project"
)

type projectCreateRequest struct {
	Title   string `json:"title"`
	Status  string `json:"status"`
	Version string `json:"version"`
	Notes   string `json:"notes"`
}

type projectUpdateRequest struct {
	Title   *string `json:"title"`
	Status  *string `json:"status"`
	Version *string `json:"version"`
	Notes   *string `json:"notes"`
}

type milestoneCreateRequest struct {
	Title    string    `json:"title"`
	Status   string    `json:"status"`
	Deadline time.Time `json:"deadline"`
	Budget   float64   `json:"budget"`
}

// handleListProjects returns every project with its derived progress and
// budget total.
func (s *Server) handleListProjects(c *gin.Context) {
	projects := s.projects.ProjectsWithStats()
	respondSuccess(c, http.StatusOK, gin.H{
		"projects": projects,
		"count":    len(projects),
	})
}

// handleCreateProject adds a new project.
func (s *Server) handleCreateProject(c *gin.Context) {
	var req projectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Title == "" {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("title is required"))
		return
	}

	p, err := s.projects.AddProject(c.Request.Context(), project.AddProjectRequest{
		Title:   req.Title,
		Status:  req.Status,
		Version: req.Version,
		Notes:   req.Notes,
	})
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"project": p})
}

// handleGetProject returns one project with stats plus its milestones and
// their progress.
func (s *Server) handleGetProject(c *gin.Context) {
	id := c.Param("id")
	stats, ok := s.projects.ProjectStats(id)
	if !ok {
		s.respondError(c, http.StatusNotFound, project.ErrProjectNotFound)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{
		"project":    stats,
		"milestones": s.projects.MilestonesWithProgress(id),
	})
}

// handleUpdateProject edits project fields; absent fields keep their values.
func (s *Server) handleUpdateProject(c *gin.Context) {
	var req projectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	p, err := s.projects.UpdateProject(c.Request.Context(), c.Param("id"), project.ProjectPatch{
		Title:   req.Title,
		Status:  req.Status,
		Version: req.Version,
		Notes:   req.Notes,
	})
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"project": p})
}

// handleDeleteProject removes a project along with its milestones and
// their issues.
func (s *Server) handleDeleteProject(c *gin.Context) {
	if err := s.projects.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

// handleListMilestones returns a project's milestones with progress.
func (s *Server) handleListMilestones(c *gin.Context) {
	id := c.Param("id")
	if _, ok := s.projects.GetProject(id); !ok {
		s.respondError(c, http.StatusNotFound, project.ErrProjectNotFound)
		return
	}
	milestones := s.projects.MilestonesWithProgress(id)
	respondSuccess(c, http.StatusOK, gin.H{
		"milestones": milestones,
		"count":      len(milestones),
	})
}

// handleCreateMilestone adds a milestone under a project.
func (s *Server) handleCreateMilestone(c *gin.Context) {
	var req milestoneCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Title == "" {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("title is required"))
		return
	}

	m, err := s.projects.AddMilestone(c.Request.Context(), project.AddMilestoneRequest{
		ProjectID: c.Param("id"),
		Title:     req.Title,
		Status:    req.Status,
		Deadline:  req.Deadline,
		Budget:    req.Budget,
	})
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"milestone": m})
}
