// Package di provides dependency injection wiring and initialization.
package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/gaffer/internal/config"
)

// Wire initializes all dependencies and returns a fully configured container.
// This is the main entry point for dependency injection.
// Order of operations:
// 1. Open the snapshots database and apply its schema
// 2. Initialize repositories and services
// 3. Register scheduler jobs
func Wire(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	// Step 1: Initialize the database
	container, err := InitializeDatabase(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Step 2: Initialize repositories and services
	if err := InitializeServices(container, cfg, log); err != nil {
		// Cleanup database on error
		container.SnapshotsDB.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	// Step 3: Register scheduler jobs
	if err := RegisterJobs(container, cfg, log); err != nil {
		// Cleanup on error
		container.SnapshotsDB.Close()
		return nil, fmt.Errorf("failed to register jobs: %w", err)
	}

	log.Info().Msg("Dependency injection wiring completed successfully")

	return container, nil
}
