// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apihandler "github.com/newthinker/stagger/internal/api/handler/api"
	"github.com/newthinker/stagger/internal/api/handler/web"
	"github.com/newthinker/stagger/internal/api/middleware"
	"github.com/newthinker/stagger/internal/app"
	"github.com/newthinker/stagger/internal/metrics"
	"go.uber.org/zap"
)

// Server represents the HTTP server for the analyzer
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	APIKey       string
	TemplatesDir string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MetricsPath serves Prometheus metrics when set and Dependencies.Metrics is non-nil.
	MetricsPath string

	// RequestsPerSecond <= 0 disables rate limiting.
	RequestsPerSecond float64
	Burst             int
}

// Dependencies holds the components the routes are served from.
type Dependencies struct {
	App     *app.App
	Metrics *metrics.Registry
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.App == nil {
		return nil, fmt.Errorf("app dependency is required")
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 15 * time.Second
	}

	mux := http.NewServeMux()

	s := &Server{
		logger: logger,
		mux:    mux,
	}

	// Set up routes
	if err := s.setupRoutes(cfg, deps); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.wrap(cfg, deps),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config, deps Dependencies) error {
	a := deps.App

	// Web UI routes
	webHandler, err := web.NewHandler(cfg.TemplatesDir, a, a.Catalog(), s.logger.Named("web"))
	if err != nil {
		return fmt.Errorf("creating web handler: %w", err)
	}
	s.mux.HandleFunc("GET /{$}", webHandler.Page)
	s.mux.HandleFunc("POST /{$}", webHandler.Analyze)

	// API routes
	auth := middleware.APIKeyAuth(cfg.APIKey)
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	analysis := apihandler.NewAnalysisHandler(a)
	commodities := apihandler.NewCommoditiesHandler(a.Catalog())
	reports := apihandler.NewReportsHandler(a)

	s.mux.HandleFunc("GET /api/v1/health", apihandler.Health)
	s.mux.Handle("GET /api/v1/commodities", protected(commodities.List))
	s.mux.Handle("GET /api/v1/commodities/{key}", protected(commodities.Get))
	s.mux.Handle("GET /api/v1/metrics/catalog", protected(apihandler.MetricCatalog))
	s.mux.Handle("POST /api/v1/analyze", protected(analysis.Analyze))
	s.mux.Handle("POST /api/v1/reports", protected(reports.Create))
	s.mux.Handle("GET /api/v1/reports", protected(reports.List))

	if deps.Metrics != nil && cfg.MetricsPath != "" {
		s.mux.Handle("GET "+cfg.MetricsPath, deps.Metrics.Handler())
	}

	return nil
}

// wrap applies the server-wide middleware around the mux. The metrics
// middleware must see the same *http.Request the mux routes so it can
// read the matched pattern.
func (s *Server) wrap(cfg Config, deps Dependencies) http.Handler {
	var onReject func()
	if deps.Metrics != nil {
		onReject = deps.Metrics.RecordRateLimited
	}

	h := middleware.RateLimit(cfg.RequestsPerSecond, cfg.Burst, onReject)(s.mux)
	if deps.Metrics != nil {
		h = metrics.HTTPMiddleware(deps.Metrics)(h)
	}
	return metrics.LoggingMiddleware(s.logger.Named("http"))(h)
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
