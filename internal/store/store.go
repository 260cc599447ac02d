// Package store reads and writes games, scorecards and their derived team
// projections. All SQL goes through database/sql so one code path serves both
// SQLite and Postgres; placeholders are written as ? and rebound per dialect.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/courtiq/cogscore/internal/category"
	"github.com/courtiq/cogscore/internal/db"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("conflict")
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries runs statements against either the database or an open
// transaction.
type Queries struct {
	q       querier
	dialect db.Dialect
	tbl     *category.Table
	now     func() time.Time
}

func (q *Queries) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return q.q.ExecContext(ctx, db.Rebind(q.dialect, query), args...)
}

func (q *Queries) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return q.q.QueryContext(ctx, db.Rebind(q.dialect, query), args...)
}

func (q *Queries) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.q.QueryRowContext(ctx, db.Rebind(q.dialect, query), args...)
}

// Store is the entry point of the package. Its embedded Queries run outside
// any transaction.
type Store struct {
	*Queries
	db *db.DB
}

// New returns a store over d whose scorecard columns follow tbl.
func New(d *db.DB, tbl *category.Table) *Store {
	return &Store{
		Queries: &Queries{q: d, dialect: d.Dialect, tbl: tbl, now: time.Now},
		db:      d,
	}
}

// SetClock replaces the time source used for created/calculated timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.Queries.now = now
}

// Categories returns the category table the store was built with.
func (s *Store) Categories() *category.Table {
	return s.tbl
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}

// WithTx runs fn inside one transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Queries{q: tx, dialect: s.dialect, tbl: s.tbl, now: s.Queries.now}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// classify maps driver errors onto the package sentinels.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case db.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w: %v", op, ErrConflict, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func (q *Queries) timestamp() time.Time {
	return q.now().UTC()
}
