package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BrazeDaGreat/bit-focus-sub001/internal/project"
)

type issueUpdateRequest struct {
	Title       *string    `json:"title"`
	Label       *string    `json:"label"`
	DueDate     *time.Time `json:"dueDate"`
	Status      *string    `json:"status"`
	Description *string    `json:"description"`
}

// handleUpdateIssue edits issue fields; absent fields keep their values.
// Setting status to "close" is how an issue counts toward progress.
func (s *Server) handleUpdateIssue(c *gin.Context) {
	var req issueUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	iss, err := s.projects.UpdateIssue(c.Request.Context(), c.Param("id"), project.IssuePatch{
		Title:       req.Title,
		Label:       req.Label,
		DueDate:     req.DueDate,
		Status:      req.Status,
		Description: req.Description,
	})
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"issue": iss})
}

// handleDeleteIssue removes an issue. Deleting an unknown id succeeds.
func (s *Server) handleDeleteIssue(c *gin.Context) {
	if err := s.projects.DeleteIssue(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}
