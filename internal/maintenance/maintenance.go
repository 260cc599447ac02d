// Package maintenance runs periodic background tasks as Go tickers inside the
// API process.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/courtiq/cogscore/internal/importer"
)

// Repairer rebuilds games whose derived rows are missing.
type Repairer interface {
	RepairMissing(ctx context.Context) (importer.RebuildResult, error)
}

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	RepairInterval time.Duration // Rebuild games with no statistics rows
	AfterRepair    []Hook        // Run after a sweep that rebuilt something
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		RepairInterval: 30 * time.Minute,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, rep Repairer, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started", "repair", cfg.RepairInterval)

	if cfg.RepairInterval > 0 {
		t := time.NewTicker(cfg.RepairInterval)
		defer t.Stop()
		go runLoop(ctx, t.C, func() { repair(ctx, rep, cfg.AfterRepair, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// repair rebuilds derived rows for games that lost them, e.g. after a manual
// cleanup or an interrupted rebuild.
func repair(ctx context.Context, rep Repairer, hooks []Hook, logger *slog.Logger) {
	start := time.Now()
	result, err := rep.RepairMissing(ctx)
	dur := time.Since(start).Round(time.Millisecond)
	if err != nil {
		logger.Warn("Repair sweep: failed", "duration", dur, "error", err)
		return
	}
	for _, e := range result.Errors {
		logger.Warn("Repair sweep: game skipped", "error", e)
	}
	if result.Games == 0 {
		return
	}
	logger.Info("Repair sweep: rebuilt games", "duration", dur, "summary", result.Summary())
	for _, h := range hooks {
		h(result)
	}
}
