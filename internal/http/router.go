package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Create controllers with appropriate interfaces
	health := NewHealthController(cfg.Database, cfg.Version)
	sessionsController := NewSessionsController(cfg.Sessions)
	referenceController := NewReferenceController(cfg.Reference)
	libraryController := NewLibraryController(cfg.Library)
	settingsController := NewSettingsController(cfg.Settings)
	userController := NewUserController(cfg.Database)
	initController := NewInitController(cfg.Database, cfg.Sessions, cfg.Reference, cfg.Library, cfg.Settings)
	dataController := NewDataController(cfg.Reconciler)
	statisticsController := NewStatisticsController(cfg.Statistics)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Bootstrap endpoint
	router.GET("/api/init", initController.GetInit)

	// User profile endpoints
	router.GET("/api/user", userController.GetUser)
	router.PUT("/api/user", userController.UpdateUser)
	router.POST("/api/user", userController.UpdateUser)

	// Category endpoints
	router.GET("/api/categories", referenceController.GetCategories)
	router.POST("/api/categories", referenceController.AddCategory)
	router.PUT("/api/categories/:id", referenceController.UpdateCategory)
	router.DELETE("/api/categories/:id", referenceController.DeleteCategory)

	// Instrument endpoints
	router.GET("/api/instruments", referenceController.GetInstruments)
	router.POST("/api/instruments", referenceController.AddInstrument)
	router.PUT("/api/instruments/:id", referenceController.UpdateInstrument)
	router.DELETE("/api/instruments/:id", referenceController.DeleteInstrument)

	// Artist endpoints
	router.GET("/api/artists", referenceController.GetArtists)
	router.POST("/api/artists", referenceController.AddArtist)
	router.PUT("/api/artists/:id", referenceController.UpdateArtist)
	router.DELETE("/api/artists/:id", referenceController.DeleteArtist)

	// Library endpoints
	router.GET("/api/library", libraryController.GetLibrary)
	router.POST("/api/library", libraryController.AddLibraryItem)
	router.PUT("/api/library/:id", libraryController.UpdateLibraryItem)
	router.DELETE("/api/library/:id", libraryController.DeleteLibraryItem)

	// Session endpoints. The static "current" segment coexists with the
	// :id parameter routes.
	router.GET("/api/sessions", sessionsController.GetSessions)
	router.POST("/api/sessions", sessionsController.AddSession)
	router.PUT("/api/sessions/:id", sessionsController.UpdateSession)
	router.DELETE("/api/sessions/:id", sessionsController.DeleteSession)
	router.GET("/api/sessions/current", sessionsController.GetCurrentSession)
	router.POST("/api/sessions/current", sessionsController.SaveCurrentSession)
	router.DELETE("/api/sessions/current", sessionsController.ClearCurrentSession)
	router.POST("/api/sessions/current/items", sessionsController.AddCurrentSessionItem)
	router.PUT("/api/sessions/current/items/:id", sessionsController.UpdateCurrentSessionItemTime)

	// Theme endpoints
	router.GET("/api/theme", settingsController.GetTheme)
	router.POST("/api/theme", settingsController.SetTheme)

	// Statistics endpoints
	router.GET("/api/statistics/summary", statisticsController.GetSummary)

	// Data management endpoints
	router.GET("/api/export", dataController.ExportData)
	router.POST("/api/import", dataController.ImportData)
	router.POST("/api/clear", dataController.ClearData)

	// Task management endpoints
	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient)
		router.POST("/api/backup", tasksController.RunBackup)
		router.GET("/api/tasks/:id", tasksController.GetTaskStatus)
	}

	return router
}
