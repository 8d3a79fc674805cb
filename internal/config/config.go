// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/aristath/gaffer/internal/modules/backtest"
)

// Config holds application configuration
type Config struct {
	DataDir     string // Base directory for databases and local files (always absolute)
	DatasetPath string // Optional JSON dataset with players/teams/fixtures; empty runs on simulated data
	LogLevel    string
	Port        int
	DevMode     bool

	// Workers is the batch-scoring worker pool size.
	Workers int

	// Seed drives the simulated form, fixture and performance streams.
	Seed int64

	Backtest BacktestDefaults
}

// BacktestDefaults seed backtest runs that omit these knobs in the
// request body.
type BacktestDefaults struct {
	Budget              float64
	MaxTransfersPerWeek int
	MinConfidence       float64
	MaxRisk             float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Determine data directory with fallback logic
	// 1. Check GAFFER_DATA_DIR environment variable
	// 2. If not set, default to ./data
	// 3. Always resolve to absolute path
	// 4. Ensure directory exists
	dataDir := getEnv("GAFFER_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:     absDataDir,
		DatasetPath: getEnv("GAFFER_DATASET", ""),
		Port:        getEnvAsInt("GO_PORT", 8001),
		DevMode:     getEnvAsBool("DEV_MODE", false),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Workers:     getEnvAsInt("SCORING_WORKERS", 4),
		Seed:        int64(getEnvAsInt("SIM_SEED", backtest.DefaultSeed)),
		Backtest: BacktestDefaults{
			Budget:              getEnvAsFloat("BACKTEST_BUDGET", backtest.DefaultBudget),
			MaxTransfersPerWeek: getEnvAsInt("BACKTEST_MAX_TRANSFERS", backtest.DefaultMaxTransfersPerWeek),
			MinConfidence:       getEnvAsFloat("BACKTEST_MIN_CONFIDENCE", backtest.DefaultMinConfidence),
			MaxRisk:             getEnvAsFloat("BACKTEST_MAX_RISK", backtest.DefaultMaxRisk),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d outside valid range", c.Port)
	}
	if c.Workers < 1 {
		return fmt.Errorf("worker count must be positive, got %d", c.Workers)
	}
	if c.Backtest.Budget < 0 {
		return fmt.Errorf("backtest budget must not be negative, got %.1f", c.Backtest.Budget)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
