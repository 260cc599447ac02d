package importer

import (
	"fmt"
	"time"

	"github.com/courtiq/cogscore/internal/score"
)

// Result describes a successful import.
type Result struct {
	RunID          string                `json:"run_id"`
	GameID         string                `json:"game_id"`
	DateString     string                `json:"date_string"`
	GameDate       string                `json:"game_date"`
	Team           string                `json:"team"`
	Opponent       string                `json:"opponent"`
	Filename       string                `json:"filename"`
	OverallScore   *float64              `json:"overall_score"`
	CategoryScores []score.CategoryScore `json:"category_scores"`
	PlayerCount    int                   `json:"player_count"`
	Players        []string              `json:"players"`
	TeamRows       int                   `json:"team_rows"`
	Rows           int                   `json:"rows"`
	Replaced       bool                  `json:"replaced"`
	Warnings       []string              `json:"warnings,omitempty"`
}

func (r *Result) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the import.
func (r *Result) Summary() string {
	overall := "undefined"
	if r.OverallScore != nil {
		overall = fmt.Sprintf("%.2f", score.Round2(*r.OverallScore))
	}
	return fmt.Sprintf(
		"game=%s date=%s team=%s opponent=%s overall=%s players=%d rows=%d replaced=%t warnings=%d",
		r.GameID, r.DateString, r.Team, r.Opponent, overall,
		r.PlayerCount, r.Rows, r.Replaced, len(r.Warnings),
	)
}

// Event is published after a successful import.
type Event struct {
	RunID        string    `json:"run_id"`
	GameID       string    `json:"game_id"`
	DateString   string    `json:"date_string"`
	Team         string    `json:"team"`
	Opponent     string    `json:"opponent"`
	OverallScore *float64  `json:"overall_score"`
	PlayerCount  int       `json:"player_count"`
	Replaced     bool      `json:"replaced"`
	ImportedAt   time.Time `json:"imported_at"`
}

// RebuildResult tracks what a rebuild recomputed.
type RebuildResult struct {
	Games             int      `json:"games"`
	Statistics        int      `json:"statistics"`
	CogScores         int      `json:"cog_scores"`
	UndefinedScores   int      `json:"undefined_scores"`
	StatisticsDeleted int64    `json:"statistics_deleted"`
	CogScoresDeleted  int64    `json:"cog_scores_deleted"`
	Errors            []string `json:"errors,omitempty"`
}

// Add merges another RebuildResult into this one.
func (r *RebuildResult) Add(other RebuildResult) {
	r.Games += other.Games
	r.Statistics += other.Statistics
	r.CogScores += other.CogScores
	r.UndefinedScores += other.UndefinedScores
	r.StatisticsDeleted += other.StatisticsDeleted
	r.CogScoresDeleted += other.CogScoresDeleted
	r.Errors = append(r.Errors, other.Errors...)
}

// AddErrorf records a formatted error message.
func (r *RebuildResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the rebuild.
func (r *RebuildResult) Summary() string {
	return fmt.Sprintf(
		"games=%d statistics=%d cog_scores=%d undefined=%d deleted_statistics=%d deleted_cog_scores=%d errors=%d",
		r.Games, r.Statistics, r.CogScores, r.UndefinedScores,
		r.StatisticsDeleted, r.CogScoresDeleted, len(r.Errors),
	)
}
