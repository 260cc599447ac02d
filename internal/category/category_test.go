package category

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableIsValid(t *testing.T) {
	tbl := Default()
	require.NoError(t, tbl.Validate())

	assert.Len(t, tbl.Categories(), 11)
	assert.Len(t, tbl.Fields(), 37)
	assert.Len(t, tbl.Columns(), 74)
}

func TestDefaultTableOrder(t *testing.T) {
	names := make([]string, 0, 11)
	for _, c := range Default().Categories() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"Space Read", "DM Catch", "QB12 DM", "Driving", "Positioning", "Transition",
		"Cutting & Screening", "Relocation", "Footwork", "Passing", "Finishing",
	}, names)
}

func TestColumnsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, col := range Default().Columns() {
		assert.False(t, seen[col], "duplicate column %s", col)
		seen[col] = true
	}
}

func TestTagAndColumn(t *testing.T) {
	tbl := Default()
	c, ok := tbl.Get(Footwork)
	require.True(t, ok)
	f := c.Fields[0]

	assert.Equal(t, Footwork, f.Category)
	assert.Equal(t, "Footwork: Step to Ball", tbl.Pattern(f))
	assert.Equal(t, "+ve Footwork: Step to Ball", tbl.Tag(f, Positive))
	assert.Equal(t, "-ve Footwork: Step to Ball", tbl.Tag(f, Negative))
	assert.Equal(t, "footwork_step_to_ball_positive", tbl.Column(f, Positive))
	assert.Equal(t, "footwork_step_to_ball_negative", tbl.Column(f, Negative))
}

func TestLookup(t *testing.T) {
	tbl := Default()

	c, ok := tbl.Lookup("cutting & screening")
	require.True(t, ok)
	assert.Equal(t, CuttingScreening, c.ID)
	assert.Equal(t, "Cutting & Screeing", c.Columns[0])

	c, ok = tbl.Lookup("qb12_dm")
	require.True(t, ok)
	assert.Equal(t, QB12DM, c.ID)

	_, ok = tbl.Lookup("Rebounding")
	assert.False(t, ok)
}

func TestValidateRejectsBadPatterns(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
	}{
		{"empty label", []Field{{Key: "a", Label: ""}}},
		{"blank label", []Field{{Key: "a", Label: "   "}}},
		{"duplicate key", []Field{{Key: "a", Label: "One"}, {Key: "a", Label: "Two"}}},
		{"empty key", []Field{{Key: "", Label: "One"}}},
		{"prefix label", []Field{{Key: "a", Label: "Cut"}, {Key: "b", Label: "Cut Back"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := New([]Category{{ID: Footwork, Name: "Footwork", Slug: "footwork", Columns: []string{"Footwork"}, Fields: tt.fields}})
			err := tbl.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPattern))
		})
	}
}

func TestNewCopiesDefinitions(t *testing.T) {
	defs := []Category{{ID: Passing, Name: "Passing", Slug: "passing", Columns: []string{"Passing"},
		Fields: []Field{{Key: "on_target", Label: "On Target"}}}}
	tbl := New(defs)

	defs[0].Fields[0].Label = "changed"
	defs[0].Columns[0] = "changed"

	c, _ := tbl.Get(Passing)
	assert.Equal(t, "On Target", c.Fields[0].Label)
	assert.Equal(t, "Passing", c.Columns[0])
}
