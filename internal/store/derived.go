package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/courtiq/cogscore/internal/config"
)

// Team statistics and csv-sourced cog scores are projections of the team
// scorecard and can be deleted and recomputed at any time. Manual cog scores
// are user data: they are never overwritten by an upsert and survive rebuilds.

const statisticColumns = `id, game_date_iso, date_string, team, opponent, category, percentage,
	positive_count, negative_count, total_count, overall_score, csv_filename, calculated_at`

const cogScoreColumns = `id, game_date, team, opponent, score, note, source, created_at`

// UpsertTeamCogScore writes the overall score of a game. An existing manual
// score for the same game key is left untouched.
func (q *Queries) UpsertTeamCogScore(ctx context.Context, s TeamCogScore) error {
	if s.Source == "" {
		s.Source = SourceCSV
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = q.timestamp()
	}
	_, err := q.exec(ctx, `
		INSERT INTO `+config.TeamCogScoresTable+` (game_date, team, opponent, score, note, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (game_date, team, opponent) DO UPDATE SET
			score = EXCLUDED.score,
			note = EXCLUDED.note,
			source = EXCLUDED.source,
			created_at = EXCLUDED.created_at
		WHERE `+config.TeamCogScoresTable+`.source = '`+SourceCSV+`'`,
		s.GameDate, s.Team, s.Opponent, s.Score, s.Note, s.Source, s.CreatedAt,
	)
	if err != nil {
		return classify(fmt.Sprintf("upsert cog score %s/%s", s.GameDate, s.Team), err)
	}
	return nil
}

// CreateManualCogScore inserts a manually entered score. A score that already
// exists for the game key is ErrConflict.
func (q *Queries) CreateManualCogScore(ctx context.Context, s TeamCogScore) (TeamCogScore, error) {
	s.Source = SourceManual
	s.CreatedAt = q.timestamp()
	err := q.queryRow(ctx, `
		INSERT INTO `+config.TeamCogScoresTable+` (game_date, team, opponent, score, note, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		s.GameDate, s.Team, s.Opponent, s.Score, s.Note, s.Source, s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		return TeamCogScore{}, classify(fmt.Sprintf("create cog score %s/%s", s.GameDate, s.Team), err)
	}
	return s, nil
}

// DeleteTeamCogScore deletes one cog score by id.
func (q *Queries) DeleteTeamCogScore(ctx context.Context, id int64) error {
	res, err := q.exec(ctx, `DELETE FROM `+config.TeamCogScoresTable+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete cog score %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete cog score %d: %w", id, ErrNotFound)
	}
	return nil
}

// TeamCogScores lists cog scores, newest game first. An empty team lists all.
func (q *Queries) TeamCogScores(ctx context.Context, team string) ([]TeamCogScore, error) {
	query := `SELECT ` + cogScoreColumns + ` FROM ` + config.TeamCogScoresTable
	var args []any
	if team != "" {
		query += ` WHERE team = ?`
		args = append(args, team)
	}
	query += ` ORDER BY game_date DESC, team, id`

	rows, err := q.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cog scores: %w", err)
	}
	defer rows.Close()

	var out []TeamCogScore
	for rows.Next() {
		var s TeamCogScore
		if err := rows.Scan(&s.ID, &s.GameDate, &s.Team, &s.Opponent, &s.Score, &s.Note, &s.Source, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cog score: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpsertTeamStatistics writes one row per category for a game.
func (q *Queries) UpsertTeamStatistics(ctx context.Context, stats []TeamStatistic) error {
	now := q.timestamp()
	for _, s := range stats {
		if s.CalculatedAt.IsZero() {
			s.CalculatedAt = now
		}
		_, err := q.exec(ctx, `
			INSERT INTO `+config.TeamStatisticsTable+` (
				game_date_iso, date_string, team, opponent, category, percentage,
				positive_count, negative_count, total_count, overall_score,
				csv_filename, calculated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (game_date_iso, team, opponent, category) DO UPDATE SET
				date_string = EXCLUDED.date_string,
				percentage = EXCLUDED.percentage,
				positive_count = EXCLUDED.positive_count,
				negative_count = EXCLUDED.negative_count,
				total_count = EXCLUDED.total_count,
				overall_score = EXCLUDED.overall_score,
				csv_filename = EXCLUDED.csv_filename,
				calculated_at = EXCLUDED.calculated_at`,
			s.GameDateISO, s.DateString, s.Team, s.Opponent, s.Category, nullFloat(s.Percentage),
			s.PositiveCount, s.NegativeCount, s.TotalCount, nullFloat(s.OverallScore),
			s.CSVFilename, s.CalculatedAt,
		)
		if err != nil {
			return classify(fmt.Sprintf("upsert statistic %s/%s/%s", s.DateString, s.Team, s.Category), err)
		}
	}
	return nil
}

// TeamStatistics returns the category rows of one game in category order.
func (q *Queries) TeamStatistics(ctx context.Context, dateString, team string) ([]TeamStatistic, error) {
	rows, err := q.query(ctx, `
		SELECT `+statisticColumns+` FROM `+config.TeamStatisticsTable+`
		WHERE date_string = ? AND team = ?
		ORDER BY id`, dateString, team)
	if err != nil {
		return nil, fmt.Errorf("list statistics %s/%s: %w", dateString, team, err)
	}
	defer rows.Close()

	var out []TeamStatistic
	for rows.Next() {
		var s TeamStatistic
		if err := rows.Scan(
			&s.ID, &s.GameDateISO, &s.DateString, &s.Team, &s.Opponent, &s.Category, &s.Percentage,
			&s.PositiveCount, &s.NegativeCount, &s.TotalCount, &s.OverallScore,
			&s.CSVFilename, &s.CalculatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan statistic: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteDerived removes the statistics and csv cog scores of one game.
func (q *Queries) DeleteDerived(ctx context.Context, g Game) error {
	if _, err := q.exec(ctx, `DELETE FROM `+config.TeamStatisticsTable+` WHERE date_string = ? AND team = ?`,
		g.DateString, g.Team); err != nil {
		return fmt.Errorf("delete statistics of %s: %w", g.ID, err)
	}
	if _, err := q.exec(ctx, `DELETE FROM `+config.TeamCogScoresTable+` WHERE game_date = ? AND team = ? AND source = ?`,
		g.ISODate(), g.Team, SourceCSV); err != nil {
		return fmt.Errorf("delete cog scores of %s: %w", g.ID, err)
	}
	return nil
}

// DeleteAllDerived removes every statistics row and every csv cog score and
// returns how many rows of each were deleted.
func (q *Queries) DeleteAllDerived(ctx context.Context) (statistics, cogScores int64, err error) {
	res, err := q.exec(ctx, `DELETE FROM `+config.TeamStatisticsTable)
	if err != nil {
		return 0, 0, fmt.Errorf("delete statistics: %w", err)
	}
	statistics, _ = res.RowsAffected()

	res, err = q.exec(ctx, `DELETE FROM `+config.TeamCogScoresTable+` WHERE source = ?`, SourceCSV)
	if err != nil {
		return 0, 0, fmt.Errorf("delete cog scores: %w", err)
	}
	cogScores, _ = res.RowsAffected()
	return statistics, cogScores, nil
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}
