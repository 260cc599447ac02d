// Package category holds the declarative category -> pattern table that drives
// counting, scoring and the scorecard schema. The table is built once and
// passed explicitly; nothing in this package is mutable after construction.
package category

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPattern is returned by Table.Validate for unusable patterns.
var ErrInvalidPattern = errors.New("invalid category pattern")

// Tag prefixes written by the tagging tool.
const (
	PositivePrefix = "+ve "
	NegativePrefix = "-ve "
)

// Sign distinguishes positive from negative tags.
type Sign int

const (
	Positive Sign = iota
	Negative
)

func (s Sign) String() string {
	if s == Negative {
		return "negative"
	}
	return "positive"
}

// ID identifies a cognitive category. The order of the constants is the
// display order.
type ID int

const (
	SpaceRead ID = iota
	DMCatch
	QB12DM
	Driving
	Positioning
	Transition
	CuttingScreening
	Relocation
	Footwork
	Passing
	Finishing
)

// Field is one counted sub-category. It is comparable and used as a map key.
type Field struct {
	Category ID
	Key      string
	Label    string
}

// Category describes one cognitive category and the CSV column(s) its tags
// live in.
type Category struct {
	ID      ID
	Name    string
	Slug    string
	Columns []string // first is canonical, the rest are accepted aliases
	Fields  []Field
}

// Table is the immutable set of categories.
type Table struct {
	categories []Category
	byID       map[ID]int
}

// New builds a table from category definitions. Field.Category is filled in
// from the owning category.
func New(defs []Category) *Table {
	t := &Table{byID: make(map[ID]int, len(defs))}
	for _, d := range defs {
		c := Category{
			ID:      d.ID,
			Name:    d.Name,
			Slug:    d.Slug,
			Columns: append([]string(nil), d.Columns...),
			Fields:  make([]Field, len(d.Fields)),
		}
		for i, f := range d.Fields {
			f.Category = d.ID
			c.Fields[i] = f
		}
		t.byID[c.ID] = len(t.categories)
		t.categories = append(t.categories, c)
	}
	return t
}

// Categories returns the categories in display order.
func (t *Table) Categories() []Category {
	return t.categories
}

// Get returns the category with the given id.
func (t *Table) Get(id ID) (Category, bool) {
	i, ok := t.byID[id]
	if !ok {
		return Category{}, false
	}
	return t.categories[i], true
}

// Lookup finds a category by display name or slug, case-insensitively.
func (t *Table) Lookup(name string) (Category, bool) {
	for _, c := range t.categories {
		if strings.EqualFold(c.Name, name) || strings.EqualFold(c.Slug, name) {
			return c, true
		}
	}
	return Category{}, false
}

// Fields returns every field of every category in table order.
func (t *Table) Fields() []Field {
	var out []Field
	for _, c := range t.categories {
		out = append(out, c.Fields...)
	}
	return out
}

// Pattern returns "{Category}: {Label}".
func (t *Table) Pattern(f Field) string {
	c, _ := t.Get(f.Category)
	return c.Name + ": " + f.Label
}

// Tag returns the full tag text for a field and sign, e.g. "+ve Footwork: Pivot".
func (t *Table) Tag(f Field, s Sign) string {
	if s == Negative {
		return NegativePrefix + t.Pattern(f)
	}
	return PositivePrefix + t.Pattern(f)
}

// Column returns the stats/scorecard column name, e.g.
// "footwork_step_to_ball_positive".
func (t *Table) Column(f Field, s Sign) string {
	c, _ := t.Get(f.Category)
	return c.Slug + "_" + f.Key + "_" + s.String()
}

// Columns returns every counter column name in table order, positive before
// negative for each field.
func (t *Table) Columns() []string {
	var out []string
	for _, f := range t.Fields() {
		out = append(out, t.Column(f, Positive), t.Column(f, Negative))
	}
	return out
}

// Validate checks that every pattern can be counted unambiguously: labels are
// non-empty, keys unique within a category, and no label is a prefix of a
// sibling label (which would double count).
func (t *Table) Validate() error {
	slugs := make(map[string]bool)
	for _, c := range t.categories {
		if c.Name == "" || c.Slug == "" {
			return fmt.Errorf("%w: category %d has no name or slug", ErrInvalidPattern, c.ID)
		}
		if slugs[c.Slug] {
			return fmt.Errorf("%w: duplicate category slug %q", ErrInvalidPattern, c.Slug)
		}
		slugs[c.Slug] = true
		if len(c.Columns) == 0 {
			return fmt.Errorf("%w: category %q has no column", ErrInvalidPattern, c.Name)
		}

		keys := make(map[string]bool)
		for i, f := range c.Fields {
			if strings.TrimSpace(f.Label) == "" {
				return fmt.Errorf("%w: %s field %q has an empty label", ErrInvalidPattern, c.Name, f.Key)
			}
			if f.Key == "" || keys[f.Key] {
				return fmt.Errorf("%w: %s has an empty or duplicate key %q", ErrInvalidPattern, c.Name, f.Key)
			}
			keys[f.Key] = true
			for j, other := range c.Fields {
				if i != j && strings.HasPrefix(other.Label, f.Label) {
					return fmt.Errorf("%w: %s label %q is a prefix of %q", ErrInvalidPattern, c.Name, f.Label, other.Label)
				}
			}
		}
	}
	return nil
}
