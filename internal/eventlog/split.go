package eventlog

import "strings"

// Subtable is the rows of one entity (the team or one player), in original
// order, sharing the parent header.
type Subtable struct {
	Entity  string
	Records [][]string

	parent *Table
}

// ColumnIndex resolves a column against the parent header.
func (s *Subtable) ColumnIndex(names ...string) (int, bool) {
	return s.parent.ColumnIndex(names...)
}

// Len returns the number of rows.
func (s *Subtable) Len() int {
	return len(s.Records)
}

// Split is the result of splitting a table by its Row column.
type Split struct {
	Team        *Subtable
	Players     map[string]*Subtable
	PlayerOrder []string // first-appearance order
	SkippedRows int      // rows with an empty Row value
}

// Split partitions the records by Row. The value matching team (trimmed,
// case-insensitive) becomes the team sub-table; the team sub-table is always
// non-nil, possibly empty.
func (t *Table) Split(team string) Split {
	rowIdx, _ := t.ColumnIndex(ColRow)
	out := Split{
		Team:    &Subtable{Entity: team, parent: t},
		Players: make(map[string]*Subtable),
	}
	team = strings.TrimSpace(team)

	for _, rec := range t.Records {
		entity := Value(rec, rowIdx)
		switch {
		case entity == "":
			out.SkippedRows++
		case strings.EqualFold(entity, team):
			out.Team.Records = append(out.Team.Records, rec)
		default:
			sub, ok := out.Players[entity]
			if !ok {
				sub = &Subtable{Entity: entity, parent: t}
				out.Players[entity] = sub
				out.PlayerOrder = append(out.PlayerOrder, entity)
			}
			sub.Records = append(sub.Records, rec)
		}
	}
	return out
}
