package store

import (
	"context"
	"fmt"

	"github.com/courtiq/cogscore/internal/config"
)

// RecordImportRun appends an entry to the import audit log.
func (q *Queries) RecordImportRun(ctx context.Context, r ImportRun) error {
	_, err := q.exec(ctx, `
		INSERT INTO `+config.ImportRunsTable+` (id, filename, game_id, status, error_kind, message, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Filename, r.GameID, r.Status, r.ErrorKind, r.Message, r.StartedAt.UTC(), r.FinishedAt.UTC(),
	)
	if err != nil {
		return classify("record import run "+r.ID, err)
	}
	return nil
}

// ListImportRuns returns the most recent import runs first. A limit of zero
// or less returns every run.
func (q *Queries) ListImportRuns(ctx context.Context, limit int) ([]ImportRun, error) {
	query := `SELECT id, filename, game_id, status, error_kind, message, started_at, finished_at
		FROM ` + config.ImportRunsTable + ` ORDER BY started_at DESC, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := q.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list import runs: %w", err)
	}
	defer rows.Close()

	var out []ImportRun
	for rows.Next() {
		var r ImportRun
		if err := rows.Scan(&r.ID, &r.Filename, &r.GameID, &r.Status, &r.ErrorKind, &r.Message, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan import run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
