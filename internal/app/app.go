package app

import (
	"context"
	"fmt"

	log "github.com/go-pkgz/lgr"

	"github.com/khrees2412/jobtrack/internal/config"
	"github.com/khrees2412/jobtrack/internal/database"
	"github.com/khrees2412/jobtrack/internal/store"
	"github.com/khrees2412/jobtrack/internal/tracker"
)

// App is the dependency container for the CLI application
type App struct {
	DB      *database.DB
	Config  *config.Config
	Store   *store.Store
	Tracker *tracker.Tracker
}

// NewApp initializes config, logging and storage, then loads the job list
func NewApp(ctx context.Context) (*App, error) {
	// Initialize config
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg := config.AppConfig

	SetupLogs(cfg)
	setupColor(cfg.NoColor)

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	log.Printf("[DEBUG] using database %s", db.Path())

	s := store.New(db)
	return &App{
		DB:      db,
		Config:  cfg,
		Store:   s,
		Tracker: tracker.Open(ctx, s),
	}, nil
}

// Close closes all resources
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return a.DB.Close()
}
