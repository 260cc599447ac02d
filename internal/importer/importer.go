// Package importer is the CSV-to-score pipeline: it identifies the game,
// counts tagged events per entity, scores the team and persists everything in
// one transaction.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/courtiq/cogscore/internal/category"
	"github.com/courtiq/cogscore/internal/eventlog"
	"github.com/courtiq/cogscore/internal/gamefile"
	"github.com/courtiq/cogscore/internal/gameid"
	"github.com/courtiq/cogscore/internal/score"
	"github.com/courtiq/cogscore/internal/store"
	"github.com/courtiq/cogscore/internal/tally"
)

// Publisher receives an Event after every successful import.
type Publisher interface {
	PublishGameImported(ctx context.Context, event any) error
}

// Options tune one import.
type Options struct {
	// Replace deletes an existing game with the same id instead of rejecting
	// the import.
	Replace bool
}

// Importer runs imports and rebuilds against one store. It holds no
// per-import state and is safe for concurrent use.
type Importer struct {
	store     *store.Store
	table     *category.Table
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// New returns an importer scoring with the store's category table.
func New(st *store.Store, logger *slog.Logger) *Importer {
	return &Importer{
		store:  st,
		table:  st.Categories(),
		logger: logger,
		now:    time.Now,
	}
}

// SetPublisher enables import events. A nil publisher disables them.
func (im *Importer) SetPublisher(p Publisher) {
	im.publisher = p
}

// SetClock replaces the time source for run timestamps and events.
func (im *Importer) SetClock(now func() time.Time) {
	im.now = now
}

// ImportFile opens path and imports it.
func (im *Importer) ImportFile(ctx context.Context, path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(KindValidation, "file", "cannot open "+path, err)
	}
	defer f.Close()
	return im.Import(ctx, path, f, opts)
}

// Import reads one export from r. filename is used to identify the game and
// is recorded with it. Every attempt is written to the import audit log.
func (im *Importer) Import(ctx context.Context, filename string, r io.Reader, opts Options) (*Result, error) {
	started := im.now()
	runID := uuid.NewString()

	res, err := im.run(ctx, runID, filename, r, opts)
	im.recordRun(ctx, runID, filename, res, err, started)
	if err != nil {
		im.logger.Warn("Import failed", "file", filename, "kind", KindOf(err), "error", err)
		return nil, err
	}

	for _, w := range res.Warnings {
		im.logger.Warn("Import warning", "game", res.GameID, "warning", w)
	}
	im.logger.Info("Import complete", "file", filename, "summary", res.Summary())
	im.publish(ctx, res)
	return res, nil
}

func (im *Importer) run(ctx context.Context, runID, filename string, r io.Reader, opts Options) (*Result, error) {
	if err := im.table.Validate(); err != nil {
		return nil, newError(KindPatternMatch, "", "category table is unusable", err)
	}

	tbl, err := eventlog.Load(r)
	if err != nil {
		return nil, loadError(err)
	}

	res := &Result{RunID: runID, Filename: filepath.Base(filename), Rows: tbl.Len()}

	info, err := im.identify(filename, tbl, res)
	if err != nil {
		return nil, err
	}
	id, err := gameid.For(info)
	if err != nil {
		return nil, newError(KindValidation, "filename", "cannot derive game id", err)
	}
	res.GameID = id
	res.DateString = info.DateString
	res.GameDate = info.ISODate()
	res.Team = info.Team
	res.Opponent = info.Opponent

	if missing := tbl.MissingColumns(); len(missing) > 0 {
		res.warnf("missing standard columns: %v", missing)
	}
	for _, c := range im.table.Categories() {
		if _, ok := tbl.ColumnIndex(c.Columns...); !ok {
			res.warnf("no %q column; %s counts as no data", c.Columns[0], c.Name)
		}
	}

	split := tbl.Split(info.Team)
	if split.SkippedRows > 0 {
		res.warnf("%d rows without a Row value were skipped", split.SkippedRows)
	}
	if split.Team.Len() == 0 {
		res.warnf("no rows for team %q", info.Team)
	}

	counts := tally.CountSplit(im.table, split)
	scores := score.Aggregate(im.table, counts.Team.Stats)
	res.CategoryScores = scores.Categories
	res.OverallScore = scores.Overall
	res.TeamRows = counts.Team.Rows
	res.PlayerCount = len(counts.Players)
	for _, p := range counts.Players {
		res.Players = append(res.Players, p.Name)
	}
	if scores.Overall == nil {
		res.warnf("no category has tagged events; overall score is undefined")
	}

	game := store.Game{
		ID:          id,
		Date:        info.Time(),
		DateString:  info.DateString,
		Team:        info.Team,
		Opponent:    info.Opponent,
		CSVFilename: res.Filename,
	}

	err = im.store.WithTx(ctx, func(q *store.Queries) error {
		exists, err := q.GameExists(ctx, id)
		if err != nil {
			return err
		}
		if exists {
			if !opts.Replace {
				return duplicateError(game)
			}
			if err := q.DeleteGame(ctx, id); err != nil {
				return err
			}
			res.Replaced = true
		}

		if _, err := q.CreateGame(ctx, game); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return duplicateError(game)
			}
			return err
		}

		// The team entity is stored under the canonical team name so
		// rebuilds can find it whatever case the export used.
		entities := append([]tally.Entity{{Name: info.Team, Rows: counts.Team.Rows, Stats: counts.Team.Stats}}, counts.Players...)
		for _, e := range entities {
			if err := q.EnsurePlayer(ctx, e.Name); err != nil {
				return err
			}
			if _, err := q.CreateScorecard(ctx, e.Name, id, e.Stats); err != nil {
				return err
			}
		}

		return writeDerived(ctx, q, game, scores)
	})
	if err != nil {
		return nil, asImportError(err, "cannot store game "+id)
	}
	return res, nil
}

// identify parses the filename, falling back to the first Timeline cell.
func (im *Importer) identify(filename string, tbl *eventlog.Table, res *Result) (gamefile.Info, error) {
	info, err := gamefile.ParseFilename(filename)
	if err == nil {
		return info, nil
	}

	timeline := tbl.FirstValue(eventlog.ColTimeline)
	if timeline != "" {
		if tinfo, terr := gamefile.ParseTimeline(timeline); terr == nil {
			res.warnf("filename %q does not follow the naming convention; game read from the Timeline column", filepath.Base(filename))
			return tinfo, nil
		}
	}
	return gamefile.Info{}, newError(KindValidation, "filename",
		fmt.Sprintf("cannot determine date, team and opponent from %q or its Timeline column", filepath.Base(filename)), err)
}

// writeDerived stores the statistics rows of a game and, when the overall
// score is defined, its csv cog score.
func writeDerived(ctx context.Context, q *store.Queries, g store.Game, scores score.Result) error {
	rows := make([]store.TeamStatistic, 0, len(scores.Categories))
	for _, c := range scores.Categories {
		rows = append(rows, store.TeamStatistic{
			GameDateISO:   g.ISODate(),
			DateString:    g.DateString,
			Team:          g.Team,
			Opponent:      g.Opponent,
			Category:      c.Name,
			Percentage:    c.Percentage,
			PositiveCount: c.Positive,
			NegativeCount: c.Negative,
			TotalCount:    c.Total,
			OverallScore:  scores.Overall,
			CSVFilename:   g.CSVFilename,
		})
	}
	if err := q.UpsertTeamStatistics(ctx, rows); err != nil {
		return err
	}
	if scores.Overall == nil {
		return nil
	}
	return q.UpsertTeamCogScore(ctx, store.TeamCogScore{
		GameDate: g.ISODate(),
		Team:     g.Team,
		Opponent: g.Opponent,
		Score:    *scores.Overall,
		Source:   store.SourceCSV,
	})
}

func loadError(err error) error {
	switch {
	case errors.Is(err, eventlog.ErrMissingColumn):
		return newError(KindValidation, eventlog.ColRow, `CSV file missing "Row" column`, err)
	case errors.Is(err, eventlog.ErrEmpty):
		return newError(KindValidation, "file", "file is empty", err)
	case errors.Is(err, eventlog.ErrEncoding):
		return newError(KindValidation, "file", "file is not readable as UTF-8 or Latin-1 CSV", err)
	default:
		return newError(KindValidation, "file", "cannot read file", err)
	}
}

func duplicateError(g store.Game) *Error {
	return newError(KindDuplicateGame, "game_id",
		fmt.Sprintf("%s already has a game on %s (id %s); use replace to overwrite it", g.Team, g.DateString, g.ID), nil)
}

func (im *Importer) recordRun(ctx context.Context, runID, filename string, res *Result, err error, started time.Time) {
	run := store.ImportRun{
		ID:         runID,
		Filename:   filepath.Base(filename),
		Status:     store.RunSucceeded,
		StartedAt:  started,
		FinishedAt: im.now(),
	}
	if res != nil {
		run.GameID = res.GameID
	}
	if err != nil {
		run.Status = store.RunFailed
		kind := KindOf(err)
		if kind == KindValidation || kind == KindDuplicateGame {
			run.Status = store.RunRejected
		}
		run.ErrorKind = string(kind)
		run.Message = err.Error()
	}
	if rerr := im.store.RecordImportRun(ctx, run); rerr != nil {
		im.logger.Warn("Failed to record import run", "run", runID, "error", rerr)
	}
}

func (im *Importer) publish(ctx context.Context, res *Result) {
	if im.publisher == nil {
		return
	}
	event := Event{
		RunID:        res.RunID,
		GameID:       res.GameID,
		DateString:   res.DateString,
		Team:         res.Team,
		Opponent:     res.Opponent,
		OverallScore: res.OverallScore,
		PlayerCount:  res.PlayerCount,
		Replaced:     res.Replaced,
		ImportedAt:   im.now().UTC(),
	}
	if err := im.publisher.PublishGameImported(ctx, event); err != nil {
		im.logger.Warn("Failed to publish import event", "game", res.GameID, "error", err)
	}
}
