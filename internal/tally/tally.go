// Package tally counts "+ve <pattern>" / "-ve <pattern>" tags per category
// field over an entity's rows.
//
// Tags are matched as literal substrings. Patterns contain characters such as
// '+', '(', ')', '&' and ':'; they are never compiled into regular
// expressions.
package tally

import (
	"strings"

	"github.com/courtiq/cogscore/internal/category"
	"github.com/courtiq/cogscore/internal/eventlog"
)

// Count holds the positive and negative tag counts of one field.
type Count struct {
	Positive int
	Negative int
}

// Total returns Positive + Negative.
func (c Count) Total() int {
	return c.Positive + c.Negative
}

// Stats maps each field to its counts. Missing fields count as zero.
type Stats map[category.Field]Count

// Get returns the counts of a field.
func (s Stats) Get(f category.Field) Count {
	return s[f]
}

// Add merges other into s.
func (s Stats) Add(other Stats) {
	for f, c := range other {
		cur := s[f]
		cur.Positive += c.Positive
		cur.Negative += c.Negative
		s[f] = cur
	}
}

// Totals sums the counts of every field of one category.
func (s Stats) Totals(c category.Category) Count {
	var out Count
	for _, f := range c.Fields {
		got := s[f]
		out.Positive += got.Positive
		out.Negative += got.Negative
	}
	return out
}

// Dict renders the stats as {category}_{field}_{positive|negative} -> count for
// every field in the table, including zeros.
func (s Stats) Dict(t *category.Table) map[string]int {
	out := make(map[string]int, len(t.Columns()))
	for _, f := range t.Fields() {
		c := s[f]
		out[t.Column(f, category.Positive)] = c.Positive
		out[t.Column(f, category.Negative)] = c.Negative
	}
	return out
}

// FromDict is the inverse of Dict. Unknown keys are ignored.
func FromDict(t *category.Table, dict map[string]int) Stats {
	s := make(Stats)
	for _, f := range t.Fields() {
		c := Count{
			Positive: dict[t.Column(f, category.Positive)],
			Negative: dict[t.Column(f, category.Negative)],
		}
		if c.Total() > 0 {
			s[f] = c
		}
	}
	return s
}

// CountRows counts tags in one sub-table. Each category is read from its own
// column; a category whose column is absent counts zero.
func CountRows(t *category.Table, sub *eventlog.Subtable) Stats {
	s := make(Stats)
	for _, c := range t.Categories() {
		col, ok := sub.ColumnIndex(c.Columns...)
		if !ok {
			continue
		}
		for _, rec := range sub.Records {
			cell := eventlog.Value(rec, col)
			if cell == "" {
				continue
			}
			for _, f := range c.Fields {
				pos := strings.Count(cell, t.Tag(f, category.Positive))
				neg := strings.Count(cell, t.Tag(f, category.Negative))
				if pos == 0 && neg == 0 {
					continue
				}
				cur := s[f]
				cur.Positive += pos
				cur.Negative += neg
				s[f] = cur
			}
		}
	}
	return s
}

// Entity is the stats of one entity of a split export.
type Entity struct {
	Name  string
	Rows  int
	Stats Stats
}

// Result holds the team stats followed by every player's.
type Result struct {
	Team    Entity
	Players []Entity // first-appearance order
}

// CountSplit counts the team sub-table and every player sub-table.
func CountSplit(t *category.Table, split eventlog.Split) Result {
	res := Result{
		Team: Entity{Name: split.Team.Entity, Rows: split.Team.Len(), Stats: CountRows(t, split.Team)},
	}
	for _, name := range split.PlayerOrder {
		sub := split.Players[name]
		res.Players = append(res.Players, Entity{Name: name, Rows: sub.Len(), Stats: CountRows(t, sub)})
	}
	return res
}
