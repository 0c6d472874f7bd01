package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BrazeDaGreat/bit-focus-sub001/internal/focus"
)

type sessionLogRequest struct {
	Tag       string    `json:"tag"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type sessionEditRequest struct {
	Tag       *string    `json:"tag"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
}

// handleListSessions returns all sessions, most recent first.
func (s *Server) handleListSessions(c *gin.Context) {
	sessions := s.sessions.Sessions()
	respondSuccess(c, http.StatusOK, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// handleLogSession records a finished focus session.
func (s *Server) handleLogSession(c *gin.Context) {
	var req sessionLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("startTime and endTime are required"))
		return
	}

	sess, err := s.sessions.Add(c.Request.Context(), req.Tag, req.StartTime, req.EndTime)
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"session": sess})
}

// handleEditSession edits session fields; absent fields keep their values.
func (s *Server) handleEditSession(c *gin.Context) {
	var req sessionEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	sess, err := s.sessions.Edit(c.Request.Context(), c.Param("id"), focus.Patch{
		Tag:       req.Tag,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"session": sess})
}

// handleDeleteSession removes a session. Deleting an unknown id succeeds.
func (s *Server) handleDeleteSession(c *gin.Context) {
	if err := s.sessions.Remove(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

// handleFocusStats returns the rolling focus totals, both as raw seconds
// and as display strings.
func (s *Server) handleFocusStats(c *gin.Context) {
	now := time.Now()
	today := s.sessions.TodayTotal(now)
	week := s.sessions.Last7DaysTotal(now)

	respondSuccess(c, http.StatusOK, gin.H{
		"today": gin.H{
			"seconds":   int64(today.Seconds()),
			"formatted": focus.FormatDuration(today),
		},
		"last7Days": gin.H{
			"seconds":   int64(week.Seconds()),
			"formatted": focus.FormatDuration(week),
		},
	})
}
