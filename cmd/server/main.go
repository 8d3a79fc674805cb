// Package main is the entry point for the Gaffer player evaluation engine.
// The application scores fantasy football player pools, optimizes transfer
// decisions within squad rules and budget, and replays transfer strategies
// over historical gameweeks to measure how well the scoring model predicts.
//
// The application follows clean architecture principles:
// - Domain layer is pure (no infrastructure dependencies)
// - Dependency injection via DI container
// - Repository pattern for data access
// - Service layer for business logic
// - HTTP handlers for API endpoints
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/gaffer/internal/config"
	"github.com/aristath/gaffer/internal/di"
	"github.com/aristath/gaffer/internal/server"
	"github.com/aristath/gaffer/pkg/logger"
)

// main orchestrates the system startup sequence:
// 1. Loads configuration from environment variables (.env file supported)
// 2. Initializes the structured logging system
// 3. Wires all dependencies via DI container (database, scoring pipeline,
//    transfer optimizer, backtest engine, scheduler jobs)
// 4. Starts the cron scheduler for background jobs
// 5. Starts the HTTP server for API endpoints
// 6. Waits for shutdown signal and performs graceful shutdown
func main() {
	// Load configuration first to get log level
	// Configuration is loaded from environment variables (.env file); an
	// optional dataset file switches scoring inputs from simulated
	// streams to real player/team/fixture records.
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		// This ensures we can log the configuration error even if config loading fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger with config level
	// Logger uses structured logging (zerolog) with configurable log levels
	// Pretty mode enables human-readable output for development
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	log.Info().Msg("Starting Gaffer")

	// Wire all dependencies using DI container
	// The DI container follows clean architecture principles:
	// - The snapshots database is initialized and migrated first
	// - The repository is created with the database connection
	// - Services are created with their provider dependencies
	// - Background jobs are registered with the scheduler
	container, err := di.Wire(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	// Cleanup database on exit
	// The database must be properly closed to ensure WAL checkpoints are
	// written and integrity is maintained. Using defer ensures cleanup
	// even on panic.
	defer container.SnapshotsDB.Close()

	// Start the cron scheduler
	// Jobs: daily rescore (when a dataset is configured), 15-minute
	// system health snapshot, weekly database maintenance.
	container.Scheduler.Start()

	// Initialize HTTP server
	// Pass container to server so handlers can reach all services.
	// The HTTP server provides REST API endpoints for:
	// - Player scoring (single, batch, stored snapshots)
	// - Transfer optimization and squad validation
	// - Backtests and strategy comparison
	// - Prediction accuracy metrics
	// - System operations (status, jobs, database stats)
	srv := server.New(server.Config{
		Port:      cfg.Port,
		Log:       log,
		Config:    cfg,
		DevMode:   cfg.DevMode,
		Container: container,
	})

	// Start server in goroutine
	// The HTTP server runs in a separate goroutine so the main thread
	// can wait on shutdown signals.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	// The application blocks here until it receives SIGINT (Ctrl+C) or
	// SIGTERM (kill command).
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Stop the scheduler first so no new job starts mid-shutdown.
	// Stop blocks until a running job drains.
	container.Scheduler.Stop()

	// Graceful shutdown
	// The HTTP server is given up to 10 seconds to finish processing
	// in-flight requests and close connections gracefully.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
