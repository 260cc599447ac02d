package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/courtiq/cogscore/internal/api/handler"
	"github.com/courtiq/cogscore/internal/cache"
	"github.com/courtiq/cogscore/internal/config"
	"github.com/courtiq/cogscore/internal/importer"
	"github.com/courtiq/cogscore/internal/store"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(st *store.Store, im *importer.Importer, appCache *cache.Cache, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(st, im, appCache, cfg, logger)

	// --- Routes ---

	r.Get("/", h.Root)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Imports
		r.With(MaxBodyMiddleware(cfg.MaxUploadMB)).Post("/imports", h.ImportGame)
		r.Get("/imports", h.ListImportRuns)
		r.Post("/rebuild", h.Rebuild)

		// Games
		r.Get("/games", h.ListGames)
		r.Get("/games/{gameID}", h.GetGame)
		r.Delete("/games/{gameID}", h.DeleteGame)

		// Cog scores
		r.Get("/cog-scores", h.ListCogScores)
		r.Post("/cog-scores", h.CreateCogScore)
		r.Delete("/cog-scores/{id}", h.DeleteCogScore)

		// Categories
		r.Get("/categories", h.ListCategories)
	})

	return r
}
