package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/ignite/impact-dashboard/internal/cache"
	"github.com/ignite/impact-dashboard/internal/config"
	"github.com/ignite/impact-dashboard/internal/service/ingest"
	"github.com/ignite/impact-dashboard/internal/service/metrics"
	"github.com/ignite/impact-dashboard/internal/service/records"
)

// Deps are the services and backing stores the API serves from. DB and Cache
// are only used by the health endpoints and may be nil.
type Deps struct {
	Ingest  *ingest.Service
	Records *records.Service
	Metrics *metrics.Service
	DB      *sql.DB
	Cache   *cache.MetricsCache
}

// Server represents the API server
type Server struct {
	config  config.ServerConfig
	handler http.Handler
	server  *http.Server
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, deps Deps) *Server {
	handlers := NewHandlers(deps.Ingest, deps.Records, deps.Metrics, HandlerOptions{
		MaxUploadBytes:    cfg.Upload.MaxBytes,
		DailyActivityDays: cfg.Metrics.DailyActivityDays,
	})
	health := NewHealthChecker(deps.DB, deps.Cache)

	return &Server{
		config:  cfg.Server,
		handler: SetupRoutes(handlers, health, cfg.CORS.AllowedOrigins),
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadTimeout:       s.config.ReadTimeout(),
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      s.config.WriteTimeout(),
		IdleTimeout:       120 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing
func (s *Server) Handler() http.Handler {
	return s.handler
}
