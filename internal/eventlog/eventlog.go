// Package eventlog loads Timeline/Row/Instance CSV exports from the video
// tagging tool and splits them into per-entity sub-tables.
package eventlog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrEncoding      = errors.New("unreadable file encoding")
	ErrEmpty         = errors.New("file has no header row")
)

// Standard export columns.
const (
	ColTimeline       = "Timeline"
	ColStartTime      = "Start time"
	ColDuration       = "Duration"
	ColRow            = "Row"
	ColInstanceNumber = "Instance number"
)

// tableMarker is the line some spreadsheet exports put above the header.
const tableMarker = "Table 1"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a parsed export. Records keep their original order and width is
// not enforced.
type Table struct {
	Header   []string
	Records  [][]string
	Encoding string // "utf-8" or "latin-1"

	index map[string]int
}

// Load reads an export. The Row column is required; every other column is
// optional at this layer.
func Load(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	text, encoding, err := decode(raw)
	if err != nil {
		return nil, err
	}
	text = dropMarkerLine(text)

	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrEncoding, err)
	}

	t := &Table{Encoding: encoding, index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(h)
		t.Header = append(t.Header, h)
		if _, dup := t.index[h]; !dup && h != "" {
			t.index[h] = i
		}
	}
	if !t.HasColumn(ColRow) {
		return nil, fmt.Errorf("%w: CSV file missing %q column", ErrMissingColumn, ColRow)
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
		}
		if isBlank(rec) {
			continue
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

// decode returns the file as UTF-8 text, falling back to Latin-1 when the
// bytes are not valid UTF-8.
func decode(raw []byte) (string, string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw), "utf-8", nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return string(out), "latin-1", nil
}

func dropMarkerLine(text string) string {
	first, rest, found := strings.Cut(text, "\n")
	line := strings.TrimRight(strings.TrimSpace(first), ",")
	line = strings.Trim(line, `"`)
	if strings.TrimSpace(line) != tableMarker {
		return text
	}
	if !found {
		return ""
	}
	return rest
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the index of the first of names present in the header.
func (t *Table) ColumnIndex(names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := t.index[n]; ok {
			return i, true
		}
	}
	return -1, false
}

// MissingColumns returns the standard export columns absent from the header.
func (t *Table) MissingColumns() []string {
	var missing []string
	for _, c := range []string{ColTimeline, ColStartTime, ColDuration, ColRow, ColInstanceNumber} {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Value returns the trimmed cell at column index i, or "" for short rows.
func Value(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// FirstValue returns the first non-empty value of a column.
func (t *Table) FirstValue(column string) string {
	i, ok := t.ColumnIndex(column)
	if !ok {
		return ""
	}
	for _, rec := range t.Records {
		if v := Value(rec, i); v != "" {
			return v
		}
	}
	return ""
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Records)
}
