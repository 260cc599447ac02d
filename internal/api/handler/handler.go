// Package handler provides HTTP handlers for all API endpoints.
// Handlers are thin adapters: imports and rebuilds go through the importer,
// reads and deletes go straight to the store.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/courtiq/cogscore/internal/api/respond"
	"github.com/courtiq/cogscore/internal/cache"
	"github.com/courtiq/cogscore/internal/config"
	"github.com/courtiq/cogscore/internal/importer"
	"github.com/courtiq/cogscore/internal/store"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	store    *store.Store
	importer *importer.Importer
	cache    *cache.Cache
	cfg      *config.Config
	logger   *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(st *store.Store, im *importer.Importer, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		store:    st,
		importer: im,
		cache:    c,
		cfg:      cfg,
		logger:   logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status and the docs location.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":        "CourtIQ Cognitive Score API",
		"version":     "1.0.0",
		"status":      "running",
		"docs":        "/docs",
		"environment": h.cfg.Environment,
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies database connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Warn("Database health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// serveCached answers a read from the cache when possible, honouring
// If-None-Match, and otherwise loads, encodes and caches the value.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration,
	load func(ctx context.Context) (interface{}, error)) {
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	v, err := load(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("Encode response failed", "key", key, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to encode response")
		return
	}

	etag := h.cache.Set(key, data, ttl)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}

// invalidate drops every cached response after a write.
func (h *Handler) invalidate() {
	h.cache.Flush()
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, store.ErrConflict):
		respond.WriteErrorDetail(w, http.StatusConflict, "CONFLICT", "Resource already exists", err.Error())
	default:
		h.logger.Error("Store operation failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Database operation failed")
	}
}

// writeImportError maps importer failures onto HTTP statuses: validation is
// 422, a duplicate game is 409 and everything else is 500.
func (h *Handler) writeImportError(w http.ResponseWriter, err error) {
	var ie *importer.Error
	if !errors.As(err, &ie) {
		h.writeStoreError(w, err)
		return
	}

	body := respond.ErrorBody{Message: ie.Message, Field: ie.Field}
	status := http.StatusInternalServerError
	switch ie.Kind {
	case importer.KindValidation:
		status = http.StatusUnprocessableEntity
		body.Code = "VALIDATION_ERROR"
	case importer.KindDuplicateGame:
		status = http.StatusConflict
		body.Code = "DUPLICATE_GAME"
	case importer.KindPatternMatch:
		body.Code = "PATTERN_MATCH_ERROR"
	default:
		body.Code = "PERSISTENCE_ERROR"
		h.logger.Error("Import persistence failure", "error", err)
	}
	if ie.Err != nil && ie.Kind != importer.KindPersistence {
		body.Detail = ie.Err.Error()
	}
	respond.WriteErrorBody(w, status, body)
}
