package store

import (
	"time"

	"github.com/courtiq/cogscore/internal/tally"
)

// Cog score sources.
const (
	SourceCSV    = "csv"
	SourceManual = "manual"
)

// Import run statuses.
const (
	RunSucceeded = "succeeded"
	RunRejected  = "rejected"
	RunFailed    = "failed"
)

// Game is one team's contest on one date.
type Game struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	DateString  string    `json:"date_string"`
	Team        string    `json:"team"`
	Opponent    string    `json:"opponent"`
	CSVFilename string    `json:"csv_filename"`
	CreatedAt   time.Time `json:"created_at"`
}

// ISODate returns the game date as YYYY-MM-DD.
func (g Game) ISODate() string {
	return g.Date.UTC().Format("2006-01-02")
}

// Scorecard is one entity's tag counts for one game.
type Scorecard struct {
	ID          int64
	PlayerName  string
	GameID      string
	DateCreated time.Time
	Stats       tally.Stats
}

// TeamCogScore is the overall cognitive score of a team in one game.
type TeamCogScore struct {
	ID        int64     `json:"id"`
	GameDate  string    `json:"game_date"`
	Team      string    `json:"team"`
	Opponent  string    `json:"opponent"`
	Score     float64   `json:"score"`
	Note      string    `json:"note"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamStatistic is one category's breakdown for one game. Percentage is nil
// when the category had no tagged events; OverallScore is nil when no
// category did.
type TeamStatistic struct {
	ID            int64     `json:"id"`
	GameDateISO   string    `json:"game_date_iso"`
	DateString    string    `json:"date_string"`
	Team          string    `json:"team"`
	Opponent      string    `json:"opponent"`
	Category      string    `json:"category"`
	Percentage    *float64  `json:"percentage"`
	PositiveCount int       `json:"positive_count"`
	NegativeCount int       `json:"negative_count"`
	TotalCount    int       `json:"total_count"`
	OverallScore  *float64  `json:"overall_score"`
	CSVFilename   string    `json:"csv_filename"`
	CalculatedAt  time.Time `json:"calculated_at"`
}

// ImportRun is the audit record of one import attempt.
type ImportRun struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	GameID     string    `json:"game_id,omitempty"`
	Status     string    `json:"status"`
	ErrorKind  string    `json:"error_kind,omitempty"`
	Message    string    `json:"message,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
