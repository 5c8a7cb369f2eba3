package http

import (
	"github.com/fretlog/fretlog/internal/database"
	"github.com/fretlog/fretlog/internal/services"
	"github.com/fretlog/fretlog/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database

	// Stores
	Sessions  SessionStore
	Reference ReferenceStore
	Library   LibraryStore
	Settings  SettingsStore

	// Services
	Reconciler *services.Reconciler
	Statistics *services.Statistics

	// Task queue client (optional)
	TaskClient *tasks.Client

	// Application info
	Version string
}
