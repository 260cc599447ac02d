package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/courtiq/cogscore/internal/api/respond"
	"github.com/courtiq/cogscore/internal/cache"
	"github.com/courtiq/cogscore/internal/store"
)

// ScorecardView is a scorecard with its counters flattened to column names.
type ScorecardView struct {
	ID          int64          `json:"id"`
	PlayerName  string         `json:"player_name"`
	DateCreated string         `json:"date_created"`
	Counts      map[string]int `json:"counts"`
}

// GameDetail is a game with everything derived from it.
type GameDetail struct {
	Game       store.Game            `json:"game"`
	Scorecards []ScorecardView       `json:"scorecards"`
	Statistics []store.TeamStatistic `json:"statistics"`
}

// ListGames returns imported games, newest first.
// @Summary List games
// @Description Returns every imported game, newest first, optionally filtered by team.
// @Tags games
// @Produce json
// @Param team query string false "Team name"
// @Success 200 {array} store.Game
// @Router /games [get]
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	team := r.URL.Query().Get("team")
	h.serveCached(w, r, "games:"+team, cache.TTLGames, func(ctx context.Context) (interface{}, error) {
		games, err := h.store.ListGames(ctx, store.GameFilter{Team: team})
		if games == nil {
			games = []store.Game{}
		}
		return games, err
	})
}

// GetGame returns one game with its scorecards and statistics.
// @Summary Get game detail
// @Description Returns the game record, the team and player scorecards in insertion order, and the per-category team statistics.
// @Tags games
// @Produce json
// @Param gameID path string true "Game id"
// @Success 200 {object} GameDetail
// @Failure 404 {object} respond.ErrorResponse
// @Router /games/{gameID} [get]
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "gameID")
	h.serveCached(w, r, "game:"+id, cache.TTLGames, func(ctx context.Context) (interface{}, error) {
		return h.gameDetail(ctx, id)
	})
}

func (h *Handler) gameDetail(ctx context.Context, id string) (GameDetail, error) {
	g, err := h.store.GetGame(ctx, id)
	if err != nil {
		return GameDetail{}, err
	}
	cards, err := h.store.Scorecards(ctx, id)
	if err != nil {
		return GameDetail{}, err
	}
	stats, err := h.store.TeamStatistics(ctx, g.DateString, g.Team)
	if err != nil {
		return GameDetail{}, err
	}

	tbl := h.store.Categories()
	detail := GameDetail{
		Game:       g,
		Scorecards: make([]ScorecardView, 0, len(cards)),
		Statistics: stats,
	}
	for _, sc := range cards {
		detail.Scorecards = append(detail.Scorecards, ScorecardView{
			ID:          sc.ID,
			PlayerName:  sc.PlayerName,
			DateCreated: sc.DateCreated.UTC().Format("2006-01-02T15:04:05Z"),
			Counts:      sc.Stats.Dict(tbl),
		})
	}
	if detail.Statistics == nil {
		detail.Statistics = []store.TeamStatistic{}
	}
	return detail, nil
}

// DeleteGame deletes a game with its scorecards and CSV-derived rows.
// @Summary Delete game
// @Description Deletes the game, its scorecards, its team statistics and its CSV-sourced cog score. Manual cog scores are kept.
// @Tags games
// @Param gameID path string true "Game id"
// @Success 204
// @Failure 404 {object} respond.ErrorResponse
// @Router /games/{gameID} [delete]
func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "gameID")
	err := h.store.WithTx(r.Context(), func(q *store.Queries) error {
		return q.DeleteGame(r.Context(), id)
	})
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.logger.Info("Game deleted", "game_id", id)
	h.invalidate()
	respond.WriteNoContent(w)
}
