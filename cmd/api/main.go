// Command api is the CourtIQ cognitive score API server.
//
// Usage:
//
//	cogscore-api
//	API_PORT=8080 DATABASE_URL=postgres://localhost/cogscore cogscore-api

// @title CourtIQ Cognitive Score API
// @version 1.0.0
// @description Imports tagged basketball game exports, stores per-entity scorecards, and serves per-category team statistics and overall cognitive scores.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name CourtIQ
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/courtiq/cogscore/internal/api"
	"github.com/courtiq/cogscore/internal/cache"
	"github.com/courtiq/cogscore/internal/category"
	"github.com/courtiq/cogscore/internal/config"
	"github.com/courtiq/cogscore/internal/db"
	"github.com/courtiq/cogscore/internal/importer"
	"github.com/courtiq/cogscore/internal/maintenance"
	"github.com/courtiq/cogscore/internal/publisher"
	"github.com/courtiq/cogscore/internal/store"

	_ "github.com/courtiq/cogscore/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	conn, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	tbl := category.Default()
	if err := db.Migrate(ctx, conn, tbl); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}
	logger.Info("Database ready",
		"dialect", conn.Dialect.String(),
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	st := store.New(conn, tbl)
	im := importer.New(st, logger)

	// Publish import events to Redis (if configured)
	if cfg.RedisURL != "" {
		pub, err := publisher.NewRedisPublisher(cfg.RedisURL)
		if err != nil {
			logger.Warn("Import events disabled: Redis unavailable", "error", err)
		} else {
			defer pub.Close()
			im.SetPublisher(pub)
			logger.Info("Import events enabled")
		}
	} else {
		logger.Info("Import events disabled (no REDIS_URL)")
	}

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled, ctx.Done())
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Start maintenance tickers (repair sweep)
	mcfg := maintenance.DefaultConfig()
	mcfg.RepairInterval = cfg.MaintenanceInterval
	mcfg.AfterRepair = append(mcfg.AfterRepair, maintenance.FlushCache(appCache, logger))
	go maintenance.Start(ctx, im, mcfg, logger)

	// Create router
	router := api.NewRouter(st, im, appCache, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting CourtIQ Cognitive Score API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
