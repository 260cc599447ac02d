package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/courtiq/cogscore/internal/category"
	"github.com/courtiq/cogscore/internal/config"
)

type types struct {
	serial    string
	timestamp string
	real      string
}

func (d Dialect) types() types {
	if d == Postgres {
		return types{serial: "BIGSERIAL PRIMARY KEY", timestamp: "TIMESTAMPTZ", real: "DOUBLE PRECISION"}
	}
	return types{serial: "INTEGER PRIMARY KEY AUTOINCREMENT", timestamp: "TIMESTAMP", real: "REAL"}
}

// Schema returns the DDL statements for the dialect. Scorecard counter
// columns come from the category table.
func Schema(dialect Dialect, tbl *category.Table) []string {
	ty := dialect.types()

	counters := make([]string, 0, len(tbl.Columns()))
	for _, col := range tbl.Columns() {
		counters = append(counters, counterColumn(col))
	}

	return []string{
		`CREATE TABLE IF NOT EXISTS ` + config.GamesTable + ` (
			id TEXT PRIMARY KEY,
			date BIGINT NOT NULL,
			date_string TEXT NOT NULL,
			team TEXT NOT NULL,
			opponent TEXT NOT NULL,
			csv_filename TEXT NOT NULL DEFAULT '',
			created_at ` + ty.timestamp + ` NOT NULL,
			UNIQUE (team, date_string)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + config.PlayersTable + ` (
			name TEXT PRIMARY KEY,
			date_created ` + ty.timestamp + ` NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + config.ScorecardsTable + ` (
			id ` + ty.serial + `,
			player_name TEXT NOT NULL REFERENCES ` + config.PlayersTable + `(name),
			game_id TEXT NOT NULL REFERENCES ` + config.GamesTable + `(id) ON DELETE CASCADE,
			date_created ` + ty.timestamp + ` NOT NULL,
			` + strings.Join(counters, ",\n\t\t\t") + `,
			UNIQUE (player_name, game_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scorecards_game ON ` + config.ScorecardsTable + ` (game_id)`,
		`CREATE TABLE IF NOT EXISTS ` + config.TeamCogScoresTable + ` (
			id ` + ty.serial + `,
			game_date TEXT NOT NULL,
			team TEXT NOT NULL,
			opponent TEXT NOT NULL,
			score ` + ty.real + ` NOT NULL CHECK (score >= 0 AND score <= 100),
			note TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL,
			created_at ` + ty.timestamp + ` NOT NULL,
			UNIQUE (game_date, team, opponent)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + config.TeamStatisticsTable + ` (
			id ` + ty.serial + `,
			game_date_iso TEXT NOT NULL,
			date_string TEXT NOT NULL,
			team TEXT NOT NULL,
			opponent TEXT NOT NULL,
			category TEXT NOT NULL,
			percentage ` + ty.real + `,
			positive_count INTEGER NOT NULL,
			negative_count INTEGER NOT NULL,
			total_count INTEGER NOT NULL,
			overall_score ` + ty.real + `,
			csv_filename TEXT NOT NULL DEFAULT '',
			calculated_at ` + ty.timestamp + ` NOT NULL,
			UNIQUE (game_date_iso, team, opponent, category)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + config.ImportRunsTable + ` (
			id TEXT PRIMARY KEY,
			filename TEXT NOT NULL,
			game_id TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			error_kind TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			started_at ` + ty.timestamp + ` NOT NULL,
			finished_at ` + ty.timestamp + ` NOT NULL
		)`,
	}
}

func counterColumn(name string) string {
	return fmt.Sprintf("%s INTEGER NOT NULL DEFAULT 0 CHECK (%s >= 0)", name, name)
}

// Migrate creates any missing tables and adds scorecard columns for category
// fields introduced since the table was created.
func Migrate(ctx context.Context, d *DB, tbl *category.Table) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range Schema(d.Dialect, tbl) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	existing, err := columnsOf(ctx, tx, config.ScorecardsTable)
	if err != nil {
		return err
	}
	for _, col := range tbl.Columns() {
		if existing[col] {
			continue
		}
		if _, err := tx.ExecContext(ctx, "ALTER TABLE "+config.ScorecardsTable+" ADD COLUMN "+counterColumn(col)); err != nil {
			return fmt.Errorf("add scorecard column %s: %w", col, err)
		}
	}

	return tx.Commit()
}

func columnsOf(ctx context.Context, tx *sql.Tx, table string) (map[string]bool, error) {
	rows, err := tx.QueryContext(ctx, "SELECT * FROM "+table+" LIMIT 0")
	if err != nil {
		return nil, fmt.Errorf("read %s columns: %w", table, err)
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read %s columns: %w", table, err)
	}
	out := make(map[string]bool, len(cols))
	for _, c := range cols {
		out[strings.ToLower(c)] = true
	}
	return out, nil
}
