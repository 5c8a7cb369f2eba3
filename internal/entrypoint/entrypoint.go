package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fretlog/fretlog/internal/backup"
	"github.com/fretlog/fretlog/internal/config"
	"github.com/fretlog/fretlog/internal/database"
	"github.com/fretlog/fretlog/internal/database/library"
	"github.com/fretlog/fretlog/internal/database/reference"
	"github.com/fretlog/fretlog/internal/database/sessions"
	"github.com/fretlog/fretlog/internal/database/settings"
	http_controllers "github.com/fretlog/fretlog/internal/http"
	"github.com/fretlog/fretlog/internal/scheduler"
	"github.com/fretlog/fretlog/internal/services"
	"github.com/fretlog/fretlog/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	// Wait for interrupt signal to gracefully shutdown the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting FretLog v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Per-entity repositories
	sessionRepo := sessions.NewRepository(db.DB)
	referenceRepo := reference.NewRepository(db.DB)
	libraryRepo := library.NewRepository(db.DB)
	settingsRepo := settings.NewRepository(db.DB)

	// Services
	reconciler := services.NewReconciler(db.DB)
	statistics := services.NewStatistics(db.DB)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		backupWriter := backup.NewWriter(cfg.Backup.Dir)

		// Register task queues
		taskClient.Register(
			tasks.NewBackupSnapshotQueue(reconciler, backupWriter),
		)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Start the backup scheduler when periodic backups are enabled
	var backupScheduler *scheduler.BackupScheduler
	if cfg.Backup.Enabled && taskClient != nil {
		backupScheduler = scheduler.NewBackupScheduler(taskClient, cfg.Backup.Schedule)
		if err := backupScheduler.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start backup scheduler: %v", err)
		}
	} else if cfg.Backup.Enabled {
		log.Printf("WARNING: Periodic backups require the task queue. Set 'TASKS_ENABLED' to enable.")
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		Database:   db,
		Sessions:   sessionRepo,
		Reference:  referenceRepo,
		Library:    libraryRepo,
		Settings:   settingsRepo,
		Reconciler: reconciler,
		Statistics: statistics,
		TaskClient: taskClient,
		Version:    version,
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if backupScheduler != nil {
			backupScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
