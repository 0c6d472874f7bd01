package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BrazeDaGreat/bit-focus-sub001/internal/config"
	"github.com/BrazeDaGreat/bit-focus-sub001/internal/focus"
	"github.com/BrazeDaGreat/bit-focus-sub001/internal/project"
	"github.com/BrazeDaGreat/bit-focus-sub001/internal/storage"
	"github.com/BrazeDaGreat/bit-focus-sub001/internal/task"
)

// app bundles everything a command needs after startup: configuration,
// the open database, and the three engines hydrated from it.
type app struct {
	cfg      *config.Config
	store    *storage.Store
	tasks    *task.Store
	sessions *focus.Store
	projects *project.Store
	logger   *slog.Logger
}

// openApp loads configuration, opens the database, and loads every engine.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg)

	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	a := &app{
		cfg:      cfg,
		store:    store,
		tasks:    task.NewStore(store.Tasks(), logger),
		sessions: focus.NewStore(store.Sessions(), logger),
		projects: project.NewStore(store.Projects(), store.Milestones(), store.Issues(), logger),
		logger:   logger,
	}

	a.tasks.Load(ctx)
	a.sessions.Load(ctx)
	a.projects.Load(ctx)
	return a, nil
}

func (a *app) close() {
	a.store.Close()
}

// openStorage is the lighter path for commands that work on raw records
// and do not need the engines.
func openStorage() (*config.Config, *storage.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return cfg, store, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
}

// expandHome resolves a leading ~ against the user's home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
