// Package server provides the HTTP API: scoring, transfer optimization,
// backtests, prediction metrics, and system monitoring.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/gaffer/internal/config"
	"github.com/aristath/gaffer/internal/di"
	"github.com/aristath/gaffer/internal/modules/backtest"
	backtesthandlers "github.com/aristath/gaffer/internal/modules/backtest/handlers"
	scoringhandlers "github.com/aristath/gaffer/internal/modules/scoring/handlers"
	transfershandlers "github.com/aristath/gaffer/internal/modules/transfers/handlers"
)

// Config carries the server's dependencies.
type Config struct {
	Port      int
	Log       zerolog.Logger
	Config    *config.Config
	DevMode   bool
	Container *di.Container // DI container with all services
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            *config.Config
	container      *di.Container
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	systemHandlers := NewSystemHandlers(
		cfg.Log,
		cfg.Config.DataDir,
		cfg.Container.SnapshotsDB,
		cfg.Container.Scheduler,
		cfg.Container.Jobs,
	)

	s := &Server{
		router:         chi.NewRouter(),
		log:            cfg.Log.With().Str("component", "server").Logger(),
		cfg:            cfg.Config,
		container:      cfg.Container,
		systemHandlers: systemHandlers,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.Get("/health", s.handleHealth)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		// Player scoring and persisted snapshots
		scoringHandler := scoringhandlers.NewHandler(
			s.container.Evaluator,
			s.container.SnapshotRepo,
			s.container.ScoringConfig,
			s.log,
		)
		scoringHandler.RegisterRoutes(r)

		// Transfer optimization
		transfersHandler := transfershandlers.NewHandler(
			s.container.Optimizer,
			s.container.Checker,
			s.log,
		)
		transfersHandler.RegisterRoutes(r)

		// Backtests and prediction metrics
		backtestHandler := backtesthandlers.NewHandler(
			s.container.Engine,
			s.container.SnapshotRepo,
			s.backtestDefaults(),
			s.log,
		)
		backtestHandler.RegisterRoutes(r)

		// System monitoring and job triggers
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.systemHandlers.HandleSystemStatus)
			r.Get("/health", s.systemHandlers.HandleHealthSnapshot)
			r.Get("/database/stats", s.systemHandlers.HandleDatabaseStats)
			r.Get("/disk", s.systemHandlers.HandleDiskUsage)

			// Job status plus manual triggers
			r.Route("/jobs", func(r chi.Router) {
				r.Get("/", s.systemHandlers.HandleJobsStatus)
				r.Post("/rescore", s.systemHandlers.HandleTriggerRescore)
				r.Post("/health-snapshot", s.systemHandlers.HandleTriggerHealthSnapshot)
				r.Post("/maintenance", s.systemHandlers.HandleTriggerMaintenance)
			})
		})
	})
}

// backtestDefaults builds the backtest configuration requests start
// from: library defaults overlaid with the operator's settings.
func (s *Server) backtestDefaults() backtest.Config {
	defaults := backtest.DefaultConfig()
	defaults.Budget = s.cfg.Backtest.Budget
	defaults.MaxTransfersPerWeek = s.cfg.Backtest.MaxTransfersPerWeek
	defaults.MinConfidence = s.cfg.Backtest.MinConfidence
	defaults.MaxRisk = s.cfg.Backtest.MaxRisk
	defaults.Seed = s.cfg.Seed
	return defaults
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.systemHandlers.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"service": "gaffer",
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
