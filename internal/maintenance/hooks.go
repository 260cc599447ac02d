package maintenance

import (
	"log/slog"

	"github.com/courtiq/cogscore/internal/cache"
	"github.com/courtiq/cogscore/internal/importer"
)

// Hook runs after a maintenance sweep changed stored rows.
type Hook func(result importer.RebuildResult)

// FlushCache drops every cached API response so reads see the rebuilt rows.
func FlushCache(c *cache.Cache, logger *slog.Logger) Hook {
	return func(result importer.RebuildResult) {
		c.Flush()
		logger.Info("Flushed response cache after repair", "games", result.Games)
	}
}
