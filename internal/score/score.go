// Package score turns tag counts into cognitive percentages.
//
// A category with no tagged events has no percentage (nil) and is left out of
// the overall average; it is never treated as 0%. When no category has data
// the overall score is nil as well.
package score

import (
	"math"

	"github.com/courtiq/cogscore/internal/category"
	"github.com/courtiq/cogscore/internal/tally"
)

// CategoryScore is one category's totals and percentage.
type CategoryScore struct {
	Category   category.ID `json:"-"`
	Name       string      `json:"category"`
	Positive   int         `json:"positive_count"`
	Negative   int         `json:"negative_count"`
	Total      int         `json:"total_count"`
	Percentage *float64    `json:"percentage"`
}

// Result is the per-category breakdown plus the overall score.
type Result struct {
	Categories []CategoryScore `json:"categories"`
	Overall    *float64        `json:"overall_score"`
}

// Defined returns the number of categories with a percentage.
func (r Result) Defined() int {
	n := 0
	for _, c := range r.Categories {
		if c.Percentage != nil {
			n++
		}
	}
	return n
}

// Get returns the score of one category.
func (r Result) Get(id category.ID) (CategoryScore, bool) {
	for _, c := range r.Categories {
		if c.Category == id {
			return c, true
		}
	}
	return CategoryScore{}, false
}

// Percentage returns positive / (positive + negative) * 100, or nil when there
// are no events.
func Percentage(positive, negative int) *float64 {
	total := positive + negative
	if total <= 0 {
		return nil
	}
	p := float64(positive) / float64(total) * 100
	return &p
}

// Mean averages the non-nil values, returning nil when there are none.
func Mean(values []*float64) *float64 {
	var sum float64
	n := 0
	for _, v := range values {
		if v == nil {
			continue
		}
		sum += *v
		n++
	}
	if n == 0 {
		return nil
	}
	m := sum / float64(n)
	return &m
}

// Aggregate scores every category of the table from stats.
func Aggregate(t *category.Table, stats tally.Stats) Result {
	var res Result
	pcts := make([]*float64, 0, len(t.Categories()))
	for _, c := range t.Categories() {
		totals := stats.Totals(c)
		cs := CategoryScore{
			Category:   c.ID,
			Name:       c.Name,
			Positive:   totals.Positive,
			Negative:   totals.Negative,
			Total:      totals.Total(),
			Percentage: Percentage(totals.Positive, totals.Negative),
		}
		res.Categories = append(res.Categories, cs)
		pcts = append(pcts, cs.Percentage)
	}
	res.Overall = Mean(pcts)
	return res
}

// Round2 rounds to two decimals for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
