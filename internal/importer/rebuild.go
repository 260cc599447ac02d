package importer

import (
	"context"
	"errors"

	"github.com/courtiq/cogscore/internal/score"
	"github.com/courtiq/cogscore/internal/store"
)

// Rebuild deletes every derived row and recomputes them from the stored team
// scorecards in one transaction. Manual cog scores are kept.
func (im *Importer) Rebuild(ctx context.Context) (RebuildResult, error) {
	var result RebuildResult

	err := im.store.WithTx(ctx, func(q *store.Queries) error {
		stats, cogs, err := q.DeleteAllDerived(ctx)
		if err != nil {
			return err
		}
		result.StatisticsDeleted = stats
		result.CogScoresDeleted = cogs

		games, err := q.ListGames(ctx, store.GameFilter{})
		if err != nil {
			return err
		}
		for _, g := range games {
			if err := im.rebuildGame(ctx, q, g, &result); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return RebuildResult{}, asImportError(err, "rebuild failed")
	}

	im.logger.Info("Rebuild complete", "summary", result.Summary())
	return result, nil
}

// RebuildGame recomputes the derived rows of one game.
func (im *Importer) RebuildGame(ctx context.Context, id string) (RebuildResult, error) {
	var result RebuildResult

	err := im.store.WithTx(ctx, func(q *store.Queries) error {
		g, err := q.GetGame(ctx, id)
		if err != nil {
			return err
		}
		if err := q.DeleteDerived(ctx, g); err != nil {
			return err
		}
		return im.rebuildGame(ctx, q, g, &result)
	})
	if errors.Is(err, store.ErrNotFound) {
		return RebuildResult{}, newError(KindValidation, "game_id", "no game "+id, err)
	}
	if err != nil {
		return RebuildResult{}, asImportError(err, "rebuild of "+id+" failed")
	}
	return result, nil
}

// RepairMissing rebuilds every game that has no statistics rows, e.g. after
// an interrupted manual cleanup. Failures are collected, not fatal.
func (im *Importer) RepairMissing(ctx context.Context) (RebuildResult, error) {
	var result RebuildResult

	games, err := im.store.GamesWithoutStatistics(ctx)
	if err != nil {
		return result, asImportError(err, "list games without statistics")
	}
	for _, g := range games {
		r, err := im.RebuildGame(ctx, g.ID)
		if err != nil {
			result.AddErrorf("rebuild %s: %v", g.ID, err)
			continue
		}
		result.Add(r)
	}
	if len(games) > 0 {
		im.logger.Info("Repaired games without statistics", "summary", result.Summary())
	}
	return result, nil
}

// rebuildGame scores a game from its stored team scorecard. A game whose team
// scorecard is missing is reported and skipped.
func (im *Importer) rebuildGame(ctx context.Context, q *store.Queries, g store.Game, result *RebuildResult) error {
	sc, err := q.TeamScorecard(ctx, g)
	if errors.Is(err, store.ErrNotFound) {
		result.AddErrorf("game %s has no team scorecard for %q", g.ID, g.Team)
		return nil
	}
	if err != nil {
		return err
	}

	scores := score.Aggregate(im.table, sc.Stats)
	if err := writeDerived(ctx, q, g, scores); err != nil {
		return err
	}

	result.Games++
	result.Statistics += len(scores.Categories)
	if scores.Overall == nil {
		result.UndefinedScores++
	} else {
		result.CogScores++
	}
	return nil
}
