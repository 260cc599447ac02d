// Command ingest is the CourtIQ game import CLI.
//
// Usage:
//
//	cogscore-ingest import "10.06.25 Heat v Bucks (1).csv"
//	cogscore-ingest import exports/*.csv --replace
//	cogscore-ingest rebuild
//	cogscore-ingest rebuild --game 752a0dcfdfd80524
//	cogscore-ingest games --team Heat
//	cogscore-ingest reset --yes
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/courtiq/cogscore/internal/category"
	"github.com/courtiq/cogscore/internal/config"
	"github.com/courtiq/cogscore/internal/db"
	"github.com/courtiq/cogscore/internal/importer"
	"github.com/courtiq/cogscore/internal/publisher"
	"github.com/courtiq/cogscore/internal/score"
	"github.com/courtiq/cogscore/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "cogscore-ingest",
		Short:        "CourtIQ game import CLI",
		SilenceUsage: true,
	}

	root.AddCommand(importCmd())
	root.AddCommand(rebuildCmd())
	root.AddCommand(repairCmd())
	root.AddCommand(gamesCmd())
	root.AddCommand(runsCmd())
	root.AddCommand(resetCmd())
	root.AddCommand(migrateCmd())
	return root
}

// --------------------------------------------------------------------------
// import command
// --------------------------------------------------------------------------

func importCmd() *cobra.Command {
	var (
		replace bool
		workers int
	)
	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Import tagged game CSV files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(func(ctx context.Context, a *app) error {
				batch := a.importer.ImportFiles(ctx, args, importer.Options{Replace: replace}, workers)
				for _, r := range batch.Results {
					if r.Err != nil {
						logger.Error("import error", "file", filepath.Base(r.Path), "error", r.Err)
						continue
					}
					logger.Info("Import finished", "summary", r.Summary())
				}
				if batch.Failed > 0 {
					return fmt.Errorf("%d of %d imports failed", batch.Failed, batch.Files)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace an existing game for the same team and date")
	cmd.Flags().IntVar(&workers, "workers", 2, "Concurrent import workers")
	return cmd
}

// --------------------------------------------------------------------------
// rebuild and repair commands
// --------------------------------------------------------------------------

func rebuildCmd() *cobra.Command {
	var gameID string
	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Recompute team statistics and cog scores from stored scorecards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(func(ctx context.Context, a *app) error {
				start := time.Now()
				var (
					result importer.RebuildResult
					err    error
				)
				if gameID != "" {
					result, err = a.importer.RebuildGame(ctx, gameID)
				} else {
					result, err = a.importer.Rebuild(ctx)
				}
				if err != nil {
					return err
				}
				logRebuild("Rebuild finished", result, start)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&gameID, "game", "", "Rebuild only this game id")
	return cmd
}

func repairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repair",
		Short: "Rebuild games that have no team statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(func(ctx context.Context, a *app) error {
				start := time.Now()
				result, err := a.importer.RepairMissing(ctx)
				if err != nil {
					return err
				}
				logRebuild("Repair finished", result, start)
				return nil
			})
		},
	}
}

func logRebuild(msg string, result importer.RebuildResult, start time.Time) {
	logger.Info(msg,
		"duration", time.Since(start).Round(time.Millisecond),
		"summary", result.Summary())
	for _, e := range result.Errors {
		logger.Error("rebuild error", "error", e)
	}
}

// --------------------------------------------------------------------------
// listing commands
// --------------------------------------------------------------------------

func gamesCmd() *cobra.Command {
	var team string
	cmd := &cobra.Command{
		Use:   "games",
		Short: "List imported games with their overall cog score",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(func(ctx context.Context, a *app) error {
				games, err := a.store.ListGames(ctx, store.GameFilter{Team: team})
				if err != nil {
					return err
				}
				scores, err := a.store.TeamCogScores(ctx, team)
				if err != nil {
					return err
				}
				byKey := make(map[string]store.TeamCogScore, len(scores))
				for _, s := range scores {
					byKey[s.GameDate+"|"+s.Team] = s
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tDATE\tTEAM\tOPPONENT\tCOG SCORE\tFILE")
				for _, g := range games {
					cog := "-"
					if s, ok := byKey[g.ISODate()+"|"+g.Team]; ok {
						cog = fmt.Sprintf("%.2f (%s)", score.Round2(s.Score), s.Source)
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
						g.ID, g.ISODate(), g.Team, g.Opponent, cog, g.CSVFilename)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&team, "team", "", "Only list games of this team")
	return cmd
}

func runsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent import attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(func(ctx context.Context, a *app) error {
				runs, err := a.store.ListImportRuns(ctx, limit)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "STARTED\tSTATUS\tFILE\tGAME\tMESSAGE")
				for _, r := range runs {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
						r.StartedAt.Format(time.RFC3339), r.Status, r.Filename, r.GameID, r.Message)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list (0 = all)")
	return cmd
}

// --------------------------------------------------------------------------
// administrative commands
// --------------------------------------------------------------------------

func resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every game, scorecard, statistic, cog score and import run",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset deletes all data; pass --yes to confirm")
			}
			return runWithApp(func(ctx context.Context, a *app) error {
				if err := a.store.WithTx(ctx, func(q *store.Queries) error {
					return q.ResetAll(ctx)
				}); err != nil {
					return err
				}
				logger.Warn("All data deleted")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion of all data")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(func(ctx context.Context, a *app) error {
				logger.Info("Schema up to date",
					"dialect", a.db.Dialect.String(),
					"scorecard_columns", len(a.store.Categories().Columns()))
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

type app struct {
	cfg      *config.Config
	db       *db.DB
	store    *store.Store
	importer *importer.Importer
}

// runWithApp handles config loading, DB connection and migration, optional
// event publishing, and context cancellation.
func runWithApp(fn func(ctx context.Context, a *app) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	conn, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer conn.Close()

	tbl := category.Default()
	if err := db.Migrate(ctx, conn, tbl); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	st := store.New(conn, tbl)
	im := importer.New(st, logger)

	if cfg.RedisURL != "" {
		pub, err := publisher.NewRedisPublisher(cfg.RedisURL)
		if err != nil {
			logger.Warn("Import events disabled: Redis unavailable", "error", err)
		} else {
			defer pub.Close()
			im.SetPublisher(pub)
		}
	}

	return fn(ctx, &app{cfg: cfg, db: conn, store: st, importer: im})
}
