package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/courtiq/cogscore/internal/api/respond"
	"github.com/courtiq/cogscore/internal/importer"
	"github.com/courtiq/cogscore/internal/store"
)

const defaultImportRunLimit = 50

// ImportGame imports one tagged game CSV.
// @Summary Import a game CSV
// @Description Parses an uploaded tagging export, stores the game, its scorecards and derived statistics in one transaction, and returns the computed cognitive scores. The filename must follow "MM.DD.YY Team v Opponent.csv" unless the file carries a Timeline column.
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Tagging export CSV"
// @Param replace query bool false "Replace an existing game for the same team and date"
// @Success 201 {object} importer.Result
// @Failure 400 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Failure 413 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /imports [post]
func (h *Handler) ImportGame(w http.ResponseWriter, r *http.Request) {
	replace := false
	if v := r.URL.Query().Get("replace"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_REPLACE", "replace must be true or false")
			return
		}
		replace = b
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.WriteError(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Upload exceeds the size limit")
			return
		}
		respond.WriteErrorDetail(w, http.StatusBadRequest, "MISSING_FILE", "multipart field \"file\" is required", err.Error())
		return
	}
	defer file.Close()

	res, err := h.importer.Import(r.Context(), header.Filename, file, importer.Options{Replace: replace})
	if err != nil {
		h.writeImportError(w, err)
		return
	}
	h.invalidate()
	respond.WriteJSONObject(w, http.StatusCreated, res)
}

// ListImportRuns returns the import audit log, newest first.
// @Summary List import runs
// @Description Returns recorded import attempts with their outcome.
// @Tags imports
// @Produce json
// @Param limit query int false "Maximum number of runs (default 50, 0 for all)"
// @Success 200 {array} store.ImportRun
// @Failure 400 {object} respond.ErrorResponse
// @Router /imports [get]
func (h *Handler) ListImportRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultImportRunLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	runs, err := h.store.ListImportRuns(r.Context(), limit)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	if runs == nil {
		runs = []store.ImportRun{}
	}
	respond.WriteJSONObject(w, http.StatusOK, runs)
}

// Rebuild recomputes derived statistics and cog scores from stored scorecards.
// @Summary Rebuild derived rows
// @Description Deletes and recomputes every team statistic and CSV-sourced cog score from stored team scorecards. Manual cog scores are kept. With game_id only that game is rebuilt.
// @Tags imports
// @Produce json
// @Param game_id query string false "Rebuild only this game"
// @Success 200 {object} importer.RebuildResult
// @Failure 404 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /rebuild [post]
func (h *Handler) Rebuild(w http.ResponseWriter, r *http.Request) {
	var (
		result importer.RebuildResult
		err    error
	)
	if id := r.URL.Query().Get("game_id"); id != "" {
		result, err = h.importer.RebuildGame(r.Context(), id)
	} else {
		result, err = h.importer.Rebuild(r.Context())
	}
	if errors.Is(err, store.ErrNotFound) {
		respond.WriteError(w, http.StatusNotFound, "GAME_NOT_FOUND", "No game with that id")
		return
	}
	if err != nil {
		h.writeImportError(w, err)
		return
	}
	h.invalidate()
	respond.WriteJSONObject(w, http.StatusOK, result)
}
