package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtiq/cogscore/internal/category"
	"github.com/courtiq/cogscore/internal/db"
	"github.com/courtiq/cogscore/internal/tally"
)

var clock = time.Date(2025, 10, 7, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	d, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	tbl := category.Default()
	require.NoError(t, db.Migrate(ctx, d, tbl))

	s := New(d, tbl)
	s.SetClock(func() time.Time { return clock })
	return s
}

func heatGame() Game {
	return Game{
		ID:          "752a0dcfdfd80524",
		Date:        time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC),
		DateString:  "10.06.25",
		Team:        "Heat",
		Opponent:    "Bucks",
		CSVFilename: "10.06.25 Heat v Bucks.csv",
	}
}

func fieldOf(t *testing.T, id category.ID, key string) category.Field {
	t.Helper()
	c, ok := category.Default().Get(id)
	require.True(t, ok)
	for _, f := range c.Fields {
		if f.Key == key {
			return f
		}
	}
	t.Fatalf("no field %s", key)
	return category.Field{}
}

func TestCreateAndGetGame(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	exists, err := s.GameExists(ctx, heatGame().ID)
	require.NoError(t, err)
	assert.False(t, exists)

	created, err := s.CreateGame(ctx, heatGame())
	require.NoError(t, err)
	assert.Equal(t, clock, created.CreatedAt)

	got, err := s.GetGame(ctx, heatGame().ID)
	require.NoError(t, err)
	assert.Equal(t, "Heat", got.Team)
	assert.Equal(t, "Bucks", got.Opponent)
	assert.Equal(t, "10.06.25", got.DateString)
	assert.True(t, heatGame().Date.Equal(got.Date))
	assert.Equal(t, "2025-10-06", got.ISODate())

	exists, err = s.GameExists(ctx, heatGame().ID)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = s.GetGame(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCreateGameConflict(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.CreateGame(ctx, heatGame())
	require.NoError(t, err)

	again := heatGame()
	again.Opponent = "Celtics"
	_, err = s.CreateGame(ctx, again)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestScorecardRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	_, err := s.CreateGame(ctx, heatGame())
	require.NoError(t, err)

	stats := tally.Stats{
		fieldOf(t, category.Footwork, "pivot"):  {Positive: 3, Negative: 1},
		fieldOf(t, category.Passing, "on_time"): {Negative: 2},
	}
	require.NoError(t, s.EnsurePlayer(ctx, "Heat"))
	require.NoError(t, s.EnsurePlayer(ctx, "Heat"))
	id, err := s.CreateScorecard(ctx, "Heat", heatGame().ID, stats)
	require.NoError(t, err)
	assert.NotZero(t, id)

	require.NoError(t, s.EnsurePlayer(ctx, "Tyler Herro"))
	_, err = s.CreateScorecard(ctx, "Tyler Herro", heatGame().ID, tally.Stats{})
	require.NoError(t, err)

	team, err := s.TeamScorecard(ctx, heatGame())
	require.NoError(t, err)
	assert.Equal(t, id, team.ID)
	assert.Equal(t, stats, team.Stats)

	cards, err := s.Scorecards(ctx, heatGame().ID)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "Heat", cards[0].PlayerName)
	assert.Equal(t, "Tyler Herro", cards[1].PlayerName)
	assert.Empty(t, cards[1].Stats)

	_, err = s.CreateScorecard(ctx, "Heat", heatGame().ID, stats)
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(q *Queries) error {
		if _, err := q.CreateGame(ctx, heatGame()); err != nil {
			return err
		}
		if err := q.EnsurePlayer(ctx, "Heat"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := s.GameExists(ctx, heatGame().ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.WithTx(ctx, func(q *Queries) error {
		_, err := q.CreateGame(ctx, heatGame())
		return err
	}))
	exists, err = s.GameExists(ctx, heatGame().ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func ptr(v float64) *float64 { return &v }

func TestTeamStatisticsUpsert(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	g := heatGame()

	rows := []TeamStatistic{
		{GameDateISO: g.ISODate(), DateString: g.DateString, Team: g.Team, Opponent: g.Opponent,
			Category: "Footwork", Percentage: ptr(52.17391304347826), PositiveCount: 12, NegativeCount: 11, TotalCount: 23,
			OverallScore: ptr(72.6)},
		{GameDateISO: g.ISODate(), DateString: g.DateString, Team: g.Team, Opponent: g.Opponent,
			Category: "Driving", OverallScore: ptr(72.6)},
	}
	require.NoError(t, s.UpsertTeamStatistics(ctx, rows))

	rows[0].PositiveCount = 13
	require.NoError(t, s.UpsertTeamStatistics(ctx, rows))

	got, err := s.TeamStatistics(ctx, g.DateString, g.Team)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Footwork", got[0].Category)
	assert.Equal(t, 13, got[0].PositiveCount)
	require.NotNil(t, got[0].Percentage)
	assert.InDelta(t, 52.17391304347826, *got[0].Percentage, 1e-12)
	assert.Nil(t, got[1].Percentage)
	require.NotNil(t, got[1].OverallScore)
	assert.True(t, clock.Equal(got[1].CalculatedAt))
}

func TestCogScoresManualSurvivesUpsert(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	manual, err := s.CreateManualCogScore(ctx, TeamCogScore{GameDate: "2025-10-06", Team: "Heat", Opponent: "Bucks", Score: 70, Note: "coach review"})
	require.NoError(t, err)
	assert.Equal(t, SourceManual, manual.Source)
	assert.NotZero(t, manual.ID)

	require.NoError(t, s.UpsertTeamCogScore(ctx, TeamCogScore{GameDate: "2025-10-06", Team: "Heat", Opponent: "Bucks", Score: 64.9}))
	require.NoError(t, s.UpsertTeamCogScore(ctx, TeamCogScore{GameDate: "2025-10-08", Team: "Heat", Opponent: "Knicks", Score: 50}))
	require.NoError(t, s.UpsertTeamCogScore(ctx, TeamCogScore{GameDate: "2025-10-08", Team: "Heat", Opponent: "Knicks", Score: 55}))

	scores, err := s.TeamCogScores(ctx, "Heat")
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "2025-10-08", scores[0].GameDate)
	assert.Equal(t, 55.0, scores[0].Score)
	assert.Equal(t, SourceCSV, scores[0].Source)
	assert.Equal(t, 70.0, scores[1].Score)
	assert.Equal(t, SourceManual, scores[1].Source)

	_, err = s.CreateManualCogScore(ctx, TeamCogScore{GameDate: "2025-10-08", Team: "Heat", Opponent: "Knicks", Score: 1})
	assert.True(t, errors.Is(err, ErrConflict))

	require.NoError(t, s.DeleteTeamCogScore(ctx, manual.ID))
	assert.True(t, errors.Is(s.DeleteTeamCogScore(ctx, manual.ID), ErrNotFound))

	all, err := s.TeamCogScores(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDeleteGameAndDerived(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	g := heatGame()

	_, err := s.CreateGame(ctx, g)
	require.NoError(t, err)
	require.NoError(t, s.EnsurePlayer(ctx, "Heat"))
	_, err = s.CreateScorecard(ctx, "Heat", g.ID, tally.Stats{})
	require.NoError(t, err)
	require.NoError(t, s.UpsertTeamStatistics(ctx, []TeamStatistic{{GameDateISO: g.ISODate(), DateString: g.DateString, Team: g.Team, Opponent: g.Opponent, Category: "Footwork"}}))
	require.NoError(t, s.UpsertTeamCogScore(ctx, TeamCogScore{GameDate: g.ISODate(), Team: g.Team, Opponent: g.Opponent, Score: 60}))
	_, err = s.CreateManualCogScore(ctx, TeamCogScore{GameDate: g.ISODate(), Team: g.Team, Opponent: "Celtics", Score: 80})
	require.NoError(t, err)

	missing, err := s.GamesWithoutStatistics(ctx)
	require.NoError(t, err)
	assert.Empty(t, missing)

	require.NoError(t, s.DeleteGame(ctx, g.ID))

	_, err = s.GetGame(ctx, g.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	cards, err := s.Scorecards(ctx, g.ID)
	require.NoError(t, err)
	assert.Empty(t, cards)
	stats, err := s.TeamStatistics(ctx, g.DateString, g.Team)
	require.NoError(t, err)
	assert.Empty(t, stats)
	scores, err := s.TeamCogScores(ctx, g.Team)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, SourceManual, scores[0].Source)

	assert.True(t, errors.Is(s.DeleteGame(ctx, g.ID), ErrNotFound))
}

func TestDeleteAllDerivedAndMissing(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	g := heatGame()

	_, err := s.CreateGame(ctx, g)
	require.NoError(t, err)
	require.NoError(t, s.UpsertTeamStatistics(ctx, []TeamStatistic{
		{GameDateISO: g.ISODate(), DateString: g.DateString, Team: g.Team, Opponent: g.Opponent, Category: "Footwork"},
		{GameDateISO: g.ISODate(), DateString: g.DateString, Team: g.Team, Opponent: g.Opponent, Category: "Passing"},
	}))
	require.NoError(t, s.UpsertTeamCogScore(ctx, TeamCogScore{GameDate: g.ISODate(), Team: g.Team, Opponent: g.Opponent, Score: 60}))
	_, err = s.CreateManualCogScore(ctx, TeamCogScore{GameDate: "2025-10-01", Team: g.Team, Opponent: "Nets", Score: 80})
	require.NoError(t, err)

	nStats, nScores, err := s.DeleteAllDerived(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, nStats)
	assert.EqualValues(t, 1, nScores)

	missing, err := s.GamesWithoutStatistics(ctx)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, g.ID, missing[0].ID)

	scores, err := s.TeamCogScores(ctx, "")
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, SourceManual, scores[0].Source)
}

func TestListGames(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	first := heatGame()
	second := heatGame()
	second.ID = "b6fdc0582f2ff9c3"
	second.DateString = "11.02.25"
	second.Date = time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)
	other := heatGame()
	other.ID = "0000000000000001"
	other.Team = "Bucks"
	other.Opponent = "Heat"

	for _, g := range []Game{first, second, other} {
		_, err := s.CreateGame(ctx, g)
		require.NoError(t, err)
	}

	all, err := s.ListGames(ctx, GameFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, second.ID, all[0].ID)

	heat, err := s.ListGames(ctx, GameFilter{Team: "Heat"})
	require.NoError(t, err)
	require.Len(t, heat, 2)
	assert.Equal(t, []string{second.ID, first.ID}, []string{heat[0].ID, heat[1].ID})
}

func TestImportRunsAndReset(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	runs := []ImportRun{
		{ID: "a", Filename: "one.csv", Status: RunRejected, ErrorKind: "validation", Message: "bad name", StartedAt: clock, FinishedAt: clock},
		{ID: "b", Filename: "two.csv", GameID: heatGame().ID, Status: RunSucceeded, StartedAt: clock.Add(time.Minute), FinishedAt: clock.Add(time.Minute)},
	}
	for _, r := range runs {
		require.NoError(t, s.RecordImportRun(ctx, r))
	}

	got, err := s.ListImportRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "validation", got[1].ErrorKind)

	limited, err := s.ListImportRuns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = s.CreateGame(ctx, heatGame())
	require.NoError(t, err)
	require.NoError(t, s.EnsurePlayer(ctx, "Heat"))
	_, err = s.CreateScorecard(ctx, "Heat", heatGame().ID, tally.Stats{})
	require.NoError(t, err)

	require.NoError(t, s.ResetAll(ctx))
	games, err := s.ListGames(ctx, GameFilter{})
	require.NoError(t, err)
	assert.Empty(t, games)
	got, err = s.ListImportRuns(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
