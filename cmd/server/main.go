package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/ignite/impact-dashboard/internal/api"
	"github.com/ignite/impact-dashboard/internal/cache"
	"github.com/ignite/impact-dashboard/internal/config"
	"github.com/ignite/impact-dashboard/internal/pkg/logger"
	"github.com/ignite/impact-dashboard/internal/repository/postgres"
	"github.com/ignite/impact-dashboard/internal/service/ingest"
	"github.com/ignite/impact-dashboard/internal/service/metrics"
	"github.com/ignite/impact-dashboard/internal/service/records"
)

// checkPortAvailable verifies that the target port is not already in use.
func checkPortAvailable(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("address %s is already in use: %w", addr, err)
	}
	return ln.Close()
}

// extractHost returns the host part of a postgres DSN for logging without
// credentials.
func extractHost(dsn string) string {
	at := strings.Index(dsn, "@")
	if at < 0 {
		return "(unknown)"
	}
	rest := dsn[at+1:]
	if slash := strings.Index(rest, "/"); slash >= 0 {
		rest = rest[:slash]
	}
	return rest
}

func fatal(msg string, err error) {
	logger.Error(msg, "error", err)
	logger.Sync()
	os.Exit(1)
}

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, "impact-dashboard"); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	addr := cfg.Server.Addr()
	if err := checkPortAvailable(addr); err != nil {
		fatal("pre-flight check failed", err)
	}

	if cfg.Database.URL == "" {
		fatal("database url is required", errors.New("set DATABASE_URL or database.url"))
	}
	if cfg.Database.AutoMigrate {
		if err := postgres.MigrateUp(cfg.Database.URL); err != nil {
			fatal("apply migrations", err)
		}
		logger.Info("migrations applied")
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		fatal("open database", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime())

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = db.PingContext(pingCtx)
	pingCancel()
	if err != nil {
		fatal("connect to database", err)
	}
	logger.Info("database connected", "host", extractHost(cfg.Database.URL))

	// The metrics cache is optional; without Redis every request recomputes.
	var metricsCache *cache.MetricsCache
	if cfg.Redis.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewClient(ctx, cfg.Redis.URL)
		cancel()
		if err != nil {
			logger.Warn("redis unavailable, metrics cache disabled", "error", err)
		} else {
			defer client.Close()
			metricsCache = cache.NewMetricsCache(client, cfg.Redis.MetricsTTL())
			logger.Info("metrics cache enabled", "ttl", cfg.Redis.MetricsTTL().String())
		}
	}

	var ingestOpts []ingest.Option
	var metricsOpts []metrics.Option
	if metricsCache != nil {
		ingestOpts = append(ingestOpts, ingest.WithInvalidator(metricsCache))
		metricsOpts = append(metricsOpts, metrics.WithCache(metricsCache))
	}
	ingestSvc := ingest.NewService(postgres.NewIngestRepo(db), ingestOpts...)
	metricsOpts = append(metricsOpts, metrics.WithCounter(ingestSvc))

	server := api.NewServer(cfg, api.Deps{
		Ingest:  ingestSvc,
		Records: records.NewService(postgres.NewRecordsRepo(db)),
		Metrics: metrics.NewService(postgres.NewMetricsRepo(db), metricsOpts...),
		DB:      db,
		Cache:   metricsCache,
	})

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", "addr", addr)
		if err := server.ListenAndServe(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("server error", err)
		}
	}()

	<-done
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	logger.Info("server stopped")
}
