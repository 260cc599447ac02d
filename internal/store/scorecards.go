package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/courtiq/cogscore/internal/config"
	"github.com/courtiq/cogscore/internal/tally"
)

// EnsurePlayer creates the player if it does not exist yet.
func (q *Queries) EnsurePlayer(ctx context.Context, name string) error {
	_, err := q.exec(ctx, `
		INSERT INTO `+config.PlayersTable+` (name, date_created)
		VALUES (?, ?)
		ON CONFLICT (name) DO NOTHING`,
		name, q.timestamp(),
	)
	if err != nil {
		return fmt.Errorf("ensure player %q: %w", name, err)
	}
	return nil
}

// CreateScorecard stores one entity's counts for a game and returns the new
// scorecard id. Every counter column of the category table is written.
func (q *Queries) CreateScorecard(ctx context.Context, playerName, gameID string, stats tally.Stats) (int64, error) {
	cols := q.tbl.Columns()
	dict := stats.Dict(q.tbl)

	names := make([]string, 0, len(cols)+3)
	names = append(names, "player_name", "game_id", "date_created")
	args := make([]any, 0, len(cols)+3)
	args = append(args, playerName, gameID, q.timestamp())
	for _, c := range cols {
		names = append(names, c)
		args = append(args, int64(dict[c]))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")

	var id int64
	err := q.queryRow(ctx, `
		INSERT INTO `+config.ScorecardsTable+` (`+strings.Join(names, ", ")+`)
		VALUES (`+placeholders+`)
		RETURNING id`,
		args...,
	).Scan(&id)
	if err != nil {
		return 0, classify(fmt.Sprintf("create scorecard %q/%s", playerName, gameID), err)
	}
	return id, nil
}

func (q *Queries) scorecardSelect() string {
	return `SELECT id, player_name, game_id, date_created, ` + strings.Join(q.tbl.Columns(), ", ") +
		` FROM ` + config.ScorecardsTable
}

func (q *Queries) scanScorecard(row scanner) (Scorecard, error) {
	cols := q.tbl.Columns()
	counts := make([]int, len(cols))

	var sc Scorecard
	dest := make([]any, 0, len(cols)+4)
	dest = append(dest, &sc.ID, &sc.PlayerName, &sc.GameID, &sc.DateCreated)
	for i := range counts {
		dest = append(dest, &counts[i])
	}
	if err := row.Scan(dest...); err != nil {
		return Scorecard{}, err
	}

	dict := make(map[string]int, len(cols))
	for i, c := range cols {
		dict[c] = counts[i]
	}
	sc.Stats = tally.FromDict(q.tbl, dict)
	return sc, nil
}

// Scorecards returns every scorecard of a game in insertion order.
func (q *Queries) Scorecards(ctx context.Context, gameID string) ([]Scorecard, error) {
	rows, err := q.query(ctx, q.scorecardSelect()+` WHERE game_id = ? ORDER BY id`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list scorecards of %s: %w", gameID, err)
	}
	defer rows.Close()

	var out []Scorecard
	for rows.Next() {
		sc, err := q.scanScorecard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scorecard: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// TeamScorecard returns the team-entity scorecard of a game, stored under the
// game's team name.
func (q *Queries) TeamScorecard(ctx context.Context, g Game) (Scorecard, error) {
	sc, err := q.scanScorecard(q.queryRow(ctx, q.scorecardSelect()+` WHERE game_id = ? AND player_name = ?`, g.ID, g.Team))
	if err != nil {
		return Scorecard{}, classify("team scorecard of "+g.ID, err)
	}
	return sc, nil
}
