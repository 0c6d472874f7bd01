package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BrazeDaGreat/bit-focus-sub001/internal/task"
)

type taskCreateRequest struct {
	Text     string    `json:"text"`
	Subtasks []string  `json:"subtasks"`
	DueDate  time.Time `json:"dueDate"`
	Tags     []string  `json:"tags"`
	Priority int       `json:"priority"`
}

type taskUpdateRequest struct {
	Text     *string    `json:"text"`
	Subtasks *[]string  `json:"subtasks"`
	DueDate  *time.Time `json:"dueDate"`
	Tags     *[]string  `json:"tags"`
	Priority *int       `json:"priority"`
}

// handleListTasks returns the active/completed partitions, or one of the
// grouped views when ?view=time|tag|priority is given. A ?q= parameter
// updates the stored search query first, so the filter applies to every
// view until it is changed again.
func (s *Server) handleListTasks(c *gin.Context) {
	if q, ok := c.GetQuery("q"); ok {
		s.tasks.SetQuery(q)
	}

	switch view := c.Query("view"); view {
	case "":
		respondSuccess(c, http.StatusOK, gin.H{
			"query":     s.tasks.Query(),
			"active":    s.tasks.ActiveTasks(),
			"completed": s.tasks.CompletedTasks(),
		})
	case "time":
		respondSuccess(c, http.StatusOK, gin.H{
			"query":  s.tasks.Query(),
			"groups": s.tasks.GroupByTimeCategory(time.Now()),
		})
	case "tag":
		respondSuccess(c, http.StatusOK, gin.H{
			"query":  s.tasks.Query(),
			"groups": s.tasks.GroupByTag(),
		})
	case "priority":
		respondSuccess(c, http.StatusOK, gin.H{
			"query":  s.tasks.Query(),
			"groups": s.tasks.GroupByPriority(),
		})
	default:
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("unknown view %q", view))
	}
}

// handleCreateTask adds a new task.
func (s *Server) handleCreateTask(c *gin.Context) {
	var req taskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Text == "" {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("text is required"))
		return
	}

	t, err := s.tasks.Add(c.Request.Context(), task.AddRequest{
		Text:     req.Text,
		Subtasks: req.Subtasks,
		DueDate:  req.DueDate,
		Tags:     req.Tags,
		Priority: req.Priority,
	})
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"task": t})
}

// handleGetTask fetches a single task.
func (s *Server) handleGetTask(c *gin.Context) {
	t, ok := s.tasks.Get(c.Param("id"))
	if !ok {
		s.respondError(c, http.StatusNotFound, task.ErrNotFound)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": t})
}

// handleUpdateTask edits task fields; absent fields keep their values.
func (s *Server) handleUpdateTask(c *gin.Context) {
	var req taskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	t, err := s.tasks.Update(c.Request.Context(), c.Param("id"), task.Patch{
		Text:     req.Text,
		Subtasks: req.Subtasks,
		DueDate:  req.DueDate,
		Tags:     req.Tags,
		Priority: req.Priority,
	})
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": t})
}

// handleDeleteTask removes a task. Deleting an unknown id succeeds.
func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.tasks.Remove(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) handleCompleteTask(c *gin.Context) {
	if err := s.tasks.Complete(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "completed"})
}

func (s *Server) handleUncompleteTask(c *gin.Context) {
	if err := s.tasks.Uncomplete(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "uncompleted"})
}

type subtaskRequest struct {
	Completed bool `json:"completed"`
}

// handleSetSubtask toggles one subtask's completion flag.
func (s *Server) handleSetSubtask(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid subtask index %q", c.Param("index")))
		return
	}

	var req subtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	if err := s.tasks.SetSubtaskCompletion(c.Request.Context(), c.Param("id"), index, req.Completed); err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "updated"})
}
