// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/InkVite/inkvite-go/internal/application/container"
	"github.com/InkVite/inkvite-go/internal/infrastructure/caching/manager"
	tables "github.com/InkVite/inkvite-go/internal/infrastructure/database"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/logging"
	"github.com/InkVite/inkvite-go/internal/infrastructure/persistence/database"
	"github.com/InkVite/inkvite-go/internal/presentation/http/server"
	"github.com/InkVite/inkvite-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// Initialize performs the complete startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	log.Println("\033[32m" + `

  ___       _    __     __ _  _
 |_ _| _ _ | |__ \ \   / /(_)| |_  ___
  | | | ' \| / / \ \ / / | ||  _|/ -_)
 |___||_||_|_\_\  \_\_/  |_| \__|\___|
` + "\033[97m" + `
  invitations that render themselves
` + "\033[0m")

	// Step 1: Structured logging
	log.Println("Initializing channeled logging...")
	logger, err := logging.NewChanneledLogger(nil)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger.Startup().Info("Channeled logging initialized")

	// Step 2: Database connection and schema
	logger.Startup().Info("Opening database connection...")
	db, err := database.Open(logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	logger.Startup().Info("Ensuring database schema...")
	if err := tables.NewTableCreator().CreateSchema(db.DB); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Step 3: Cache system
	logger.Startup().Info("Initializing cache manager...")
	cacheManager := manager.NewManager(logger)

	// Step 4: Dependency injection container
	logger.Startup().Info("Initializing dependency injection container...")
	appContainer := container.NewContainer(db.DB, logger, cacheManager)
	logger.Startup().Info("Dependency injection container created with singleton services")

	// Step 5: Background workers
	logger.Startup().Info("Starting background workers...")
	go cacheManager.StartCleanupWorker(ctx)
	go appContainer.Broadcaster.Run()

	// Step 6: HTTP server
	logger.Startup().Info("Starting HTTP server...")
	port := config.Port
	httpServer := server.New(port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()
	cancelBackgroundTasks()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Closing database connection...")
	if err := db.Close(); err != nil {
		logger.Shutdown().Error("Error closing database", "error", err.Error())
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	if err := logger.Close(); err != nil {
		log.Printf("Error closing logger: %v", err)
	}

	return nil
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
}
