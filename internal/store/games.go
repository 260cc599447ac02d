package store

import (
	"context"
	"fmt"
	"time"

	"github.com/courtiq/cogscore/internal/config"
)

const gameColumns = `id, date, date_string, team, opponent, csv_filename, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (Game, error) {
	var g Game
	var unix int64
	if err := row.Scan(&g.ID, &unix, &g.DateString, &g.Team, &g.Opponent, &g.CSVFilename, &g.CreatedAt); err != nil {
		return Game{}, err
	}
	g.Date = time.Unix(unix, 0).UTC()
	return g, nil
}

// GameExists reports whether a game with id is stored.
func (q *Queries) GameExists(ctx context.Context, id string) (bool, error) {
	var n int
	err := q.queryRow(ctx, `SELECT COUNT(*) FROM `+config.GamesTable+` WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check game %s: %w", id, err)
	}
	return n > 0, nil
}

// CreateGame inserts g. CreatedAt is set from the store clock when zero.
// A second game with the same id, or the same team and date, is ErrConflict.
func (q *Queries) CreateGame(ctx context.Context, g Game) (Game, error) {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = q.timestamp()
	}
	_, err := q.exec(ctx, `
		INSERT INTO `+config.GamesTable+` (`+gameColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Date.Unix(), g.DateString, g.Team, g.Opponent, g.CSVFilename, g.CreatedAt,
	)
	if err != nil {
		return Game{}, classify("create game "+g.ID, err)
	}
	return g, nil
}

// GetGame returns one game or ErrNotFound.
func (q *Queries) GetGame(ctx context.Context, id string) (Game, error) {
	g, err := scanGame(q.queryRow(ctx, `SELECT `+gameColumns+` FROM `+config.GamesTable+` WHERE id = ?`, id))
	if err != nil {
		return Game{}, classify("get game "+id, err)
	}
	return g, nil
}

// GameFilter narrows ListGames.
type GameFilter struct {
	Team string
}

// ListGames returns games, newest first.
func (q *Queries) ListGames(ctx context.Context, f GameFilter) ([]Game, error) {
	query := `SELECT ` + gameColumns + ` FROM ` + config.GamesTable
	var args []any
	if f.Team != "" {
		query += ` WHERE team = ?`
		args = append(args, f.Team)
	}
	query += ` ORDER BY date DESC, team`
	return q.listGames(ctx, "list games", query, args...)
}

// GamesWithoutStatistics returns games that have no team_statistics rows.
func (q *Queries) GamesWithoutStatistics(ctx context.Context) ([]Game, error) {
	return q.listGames(ctx, "list games without statistics", `
		SELECT `+gameColumns+` FROM `+config.GamesTable+` g
		WHERE NOT EXISTS (
			SELECT 1 FROM `+config.TeamStatisticsTable+` s
			WHERE s.date_string = g.date_string AND s.team = g.team
		)
		ORDER BY date, team`)
}

func (q *Queries) listGames(ctx context.Context, op, query string, args ...any) ([]Game, error) {
	rows, err := q.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// DeleteGame removes a game, its scorecards and the csv-derived rows for its
// team and date. Manual cog scores are kept.
func (q *Queries) DeleteGame(ctx context.Context, id string) error {
	g, err := q.GetGame(ctx, id)
	if err != nil {
		return err
	}
	if err := q.DeleteDerived(ctx, g); err != nil {
		return err
	}
	if _, err := q.exec(ctx, `DELETE FROM `+config.ScorecardsTable+` WHERE game_id = ?`, id); err != nil {
		return fmt.Errorf("delete scorecards of %s: %w", id, err)
	}
	if _, err := q.exec(ctx, `DELETE FROM `+config.GamesTable+` WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	return nil
}

// ResetAll deletes every game, player, scorecard, derived row and import run.
func (q *Queries) ResetAll(ctx context.Context) error {
	for _, table := range []string{
		config.TeamStatisticsTable,
		config.TeamCogScoresTable,
		config.ScorecardsTable,
		config.GamesTable,
		config.PlayersTable,
		config.ImportRunsTable,
	} {
		if _, err := q.exec(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}
