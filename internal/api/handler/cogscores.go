package handler

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/courtiq/cogscore/internal/api/respond"
	"github.com/courtiq/cogscore/internal/cache"
	"github.com/courtiq/cogscore/internal/store"
)

// ManualCogScoreRequest is the body of POST /cog-scores.
type ManualCogScoreRequest struct {
	GameDate string  `json:"game_date" example:"2025-10-06"`
	Team     string  `json:"team" example:"Heat"`
	Opponent string  `json:"opponent" example:"Bucks"`
	Score    float64 `json:"score" example:"64.89"`
	Note     string  `json:"note"`
}

func (req ManualCogScoreRequest) validate() (field, message string) {
	if _, err := time.Parse("2006-01-02", req.GameDate); err != nil {
		return "game_date", "game_date must be YYYY-MM-DD"
	}
	if strings.TrimSpace(req.Team) == "" {
		return "team", "team is required"
	}
	if math.IsNaN(req.Score) || req.Score < 0 || req.Score > 100 {
		return "score", "score must be between 0 and 100"
	}
	return "", ""
}

// ListCogScores returns team cog scores, newest game first.
// @Summary List team cog scores
// @Description Returns CSV-derived and manual cognitive scores, optionally for one team.
// @Tags cog-scores
// @Produce json
// @Param team query string false "Team name"
// @Success 200 {array} store.TeamCogScore
// @Router /cog-scores [get]
func (h *Handler) ListCogScores(w http.ResponseWriter, r *http.Request) {
	team := r.URL.Query().Get("team")
	h.serveCached(w, r, "cog-scores:"+team, cache.TTLScores, func(ctx context.Context) (interface{}, error) {
		scores, err := h.store.TeamCogScores(ctx, team)
		if scores == nil {
			scores = []store.TeamCogScore{}
		}
		return scores, err
	})
}

// CreateCogScore records a manually entered cog score.
// @Summary Create manual cog score
// @Description Stores a manually entered score for a team and date. Manual scores are never overwritten by imports or rebuilds.
// @Tags cog-scores
// @Accept json
// @Produce json
// @Param body body ManualCogScoreRequest true "Score to record"
// @Success 201 {object} store.TeamCogScore
// @Failure 400 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /cog-scores [post]
func (h *Handler) CreateCogScore(w http.ResponseWriter, r *http.Request) {
	var req ManualCogScoreRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be a JSON object", err.Error())
		return
	}
	if field, msg := req.validate(); field != "" {
		respond.WriteErrorBody(w, http.StatusUnprocessableEntity, respond.ErrorBody{
			Code:    "VALIDATION_ERROR",
			Message: msg,
			Field:   field,
		})
		return
	}

	created, err := h.store.CreateManualCogScore(r.Context(), store.TeamCogScore{
		GameDate: req.GameDate,
		Team:     strings.TrimSpace(req.Team),
		Opponent: strings.TrimSpace(req.Opponent),
		Score:    req.Score,
		Note:     req.Note,
	})
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.invalidate()
	respond.WriteJSONObject(w, http.StatusCreated, created)
}

// DeleteCogScore deletes one cog score.
// @Summary Delete cog score
// @Description Deletes a single cog score row, manual or CSV-derived.
// @Tags cog-scores
// @Param id path int true "Cog score id"
// @Success 204
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /cog-scores/{id} [delete]
func (h *Handler) DeleteCogScore(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be an integer")
		return
	}
	if err := h.store.DeleteTeamCogScore(r.Context(), id); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.invalidate()
	respond.WriteNoContent(w)
}
