// Package web exposes the engines over a JSON HTTP API. The API is the
// surface a frontend or script talks to; every response is an envelope
// with either the requested payload or an "error" key.
package web

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BrazeDaGreat/bit-focus-sub001/internal/focus"
	"github.com/BrazeDaGreat/bit-focus-sub001/internal/project"
	"github.com/BrazeDaGreat/bit-focus-sub001/internal/task"
)

// Server provides HTTP handlers over the three engines.
type Server struct {
	engine   *gin.Engine
	tasks    *task.Store
	sessions *focus.Store
	projects *project.Store
	logger   *slog.Logger
}

// New constructs the HTTP server with routes and middleware configured.
func New(tasks *task.Store, sessions *focus.Store, projects *project.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		engine:   router,
		tasks:    tasks,
		sessions: sessions,
		projects: projects,
		logger:   logger,
	}

	s.registerRoutes()
	return s
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the web server.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// registerRoutes wires all API handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)
		api.GET("/overview", s.handleOverview)

		tasks := api.Group("/tasks")
		{
			tasks.GET("", s.handleListTasks)
			tasks.POST("", s.handleCreateTask)
			tasks.GET(":id", s.handleGetTask)
			tasks.PUT(":id", s.handleUpdateTask)
			tasks.DELETE(":id", s.handleDeleteTask)
			tasks.PUT(":id/complete", s.handleCompleteTask)
			tasks.PUT(":id/uncomplete", s.handleUncompleteTask)
			tasks.PUT(":id/subtasks/:index", s.handleSetSubtask)
		}

		f := api.Group("/focus")
		{
			f.GET("/sessions", s.handleListSessions)
			f.POST("/sessions", s.handleLogSession)
			f.PUT("/sessions/:id", s.handleEditSession)
			f.DELETE("/sessions/:id", s.handleDeleteSession)
			f.GET("/stats", s.handleFocusStats)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", s.handleListProjects)
			projects.POST("", s.handleCreateProject)
			projects.GET(":id", s.handleGetProject)
			projects.PUT(":id", s.handleUpdateProject)
			projects.DELETE(":id", s.handleDeleteProject)
			projects.GET(":id/milestones", s.handleListMilestones)
			projects.POST(":id/milestones", s.handleCreateMilestone)
		}

		milestones := api.Group("/milestones")
		{
			milestones.PUT(":id", s.handleUpdateMilestone)
			milestones.DELETE(":id", s.handleDeleteMilestone)
			milestones.GET(":id/issues", s.handleListIssues)
			milestones.POST(":id/issues", s.handleCreateIssue)
		}

		issues := api.Group("/issues")
		{
			issues.PUT(":id", s.handleUpdateIssue)
			issues.DELETE(":id", s.handleDeleteIssue)
		}
	}
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleOverview returns the cross-engine dashboard numbers in one call.
// Task counts come from the full collection, not the filtered partitions,
// so a stored search query never skews them.
func (s *Server) handleOverview(c *gin.Context) {
	now := time.Now()

	all := s.tasks.Tasks()
	active := 0
	for _, t := range all {
		if !t.Completed {
			active++
		}
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"tasks": gin.H{
			"active":    active,
			"completed": len(all) - active,
		},
		"focus": gin.H{
			"today":     focus.FormatDuration(s.sessions.TodayTotal(now)),
			"last7Days": focus.FormatDuration(s.sessions.Last7DaysTotal(now)),
		},
		"projects": s.projects.ProjectsWithStats(),
	})
}

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, task.ErrNotFound),
		errors.Is(err, focus.ErrNotFound),
		errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, project.ErrMilestoneNotFound),
		errors.Is(err, project.ErrIssueNotFound):
		return http.StatusNotFound
	case errors.Is(err, task.ErrSubtaskIndex):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	if err != nil {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondSuccess wraps a payload in a JSON envelope for consistency.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
