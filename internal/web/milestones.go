package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BrazeDaGreat/bit-focus-sub001/internal/project"
)

type milestoneUpdateRequest struct {
	Title    *string    `json:"title"`
	Status   *string    `json:"status"`
	Deadline *time.Time `json:"deadline"`
	Budget   *float64   `json:"budget"`
}

type issueCreateRequest struct {
	Title       string    `json:"title"`
	Label       string    `json:"label"`
	DueDate     time.Time `json:"dueDate"`
	Description string    `json:"description"`
}

// handleUpdateMilestone edits milestone fields; absent fields keep their
// values.
func (s *Server) handleUpdateMilestone(c *gin.Context) {
	var req milestoneUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	m, err := s.projects.UpdateMilestone(c.Request.Context(), c.Param("id"), project.MilestonePatch{
		Title:    req.Title,
		Status:   req.Status,
		Deadline: req.Deadline,
		Budget:   req.Budget,
	})
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"milestone": m})
}

// handleDeleteMilestone removes a milestone along with its issues.
func (s *Server) handleDeleteMilestone(c *gin.Context) {
	if err := s.projects.DeleteMilestone(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

// handleListIssues returns a milestone's issues.
func (s *Server) handleListIssues(c *gin.Context) {
	id := c.Param("id")
	if _, ok := s.projects.GetMilestone(id); !ok {
		s.respondError(c, http.StatusNotFound, project.ErrMilestoneNotFound)
		return
	}
	issues := s.projects.IssuesByMilestone(id)
	respondSuccess(c, http.StatusOK, gin.H{
		"issues": issues,
		"count":  len(issues),
	})
}

// handleCreateIssue adds an issue under a milestone. New issues always
// start open.
func (s *Server) handleCreateIssue(c *gin.Context) {
	var req issueCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Title == "" {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("title is required"))
		return
	}

	iss, err := s.projects.AddIssue(c.Request.Context(), project.AddIssueRequest{
		MilestoneID: c.Param("id"),
		Title:       req.Title,
		Label:       req.Label,
		DueDate:     req.DueDate,
		Description: req.Description,
	})
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"issue": iss})
}
