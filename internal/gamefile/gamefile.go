// Package gamefile extracts the game date, team and opponent from export
// filenames of the form "MM.DD.YY TEAM v OPPONENT.csv", or from the Timeline
// text of the export when the filename does not follow the convention.
package gamefile

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnrecognized is returned when no date/team/opponent can be extracted.
var ErrUnrecognized = errors.New("unrecognized game name")

// DateLayout is the normalized date_string layout.
const DateLayout = "01.02.06"

var (
	gameRe = regexp.MustCompile(`^(\d{1,2}\.\d{1,2}\.\d{2})\s+(.+?)\s+(?i:vs?\.?)\s+(.+)$`)
	dateRe = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{2})$`)

	// Suffixes the export tool or the browser append to filenames.
	copySuffixRe  = regexp.MustCompile(`\s*\(\d+\)$`)
	tableSuffixRe = regexp.MustCompile(`(?i)\s*-\s*Table\s*\d+$`)
)

// Info identifies one game.
type Info struct {
	DateString string // MM.DD.YY, zero padded
	Team       string
	Opponent   string
}

// Time returns the game date at UTC midnight.
func (i Info) Time() time.Time {
	t, _ := time.Parse(DateLayout, i.DateString)
	return t.UTC()
}

// ISODate returns the game date as YYYY-MM-DD.
func (i Info) ISODate() string {
	return i.Time().Format("2006-01-02")
}

// ParseFilename parses "MM.DD.YY TEAM v OPPONENT[suffix].csv". Any directory
// component is ignored.
func ParseFilename(name string) (Info, error) {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	ext := filepath.Ext(base)
	if strings.EqualFold(ext, ".csv") {
		base = strings.TrimSuffix(base, ext)
	}
	info, err := parse(base)
	if err != nil {
		return Info{}, fmt.Errorf("filename %q: %w", name, err)
	}
	return info, nil
}

// ParseTimeline parses the same grammar out of a Timeline cell.
func ParseTimeline(text string) (Info, error) {
	info, err := parse(text)
	if err != nil {
		return Info{}, fmt.Errorf("timeline %q: %w", text, err)
	}
	return info, nil
}

func parse(s string) (Info, error) {
	m := gameRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Info{}, ErrUnrecognized
	}
	date, err := NormalizeDate(m[1])
	if err != nil {
		return Info{}, err
	}
	team := strings.TrimSpace(m[2])
	opponent := stripSuffixes(m[3])
	if team == "" || opponent == "" {
		return Info{}, ErrUnrecognized
	}
	return Info{DateString: date, Team: team, Opponent: opponent}, nil
}

func stripSuffixes(s string) string {
	s = strings.TrimSpace(s)
	for {
		trimmed := copySuffixRe.ReplaceAllString(s, "")
		trimmed = tableSuffixRe.ReplaceAllString(trimmed, "")
		trimmed = strings.TrimSpace(trimmed)
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}

// NormalizeDate zero-pads month and day ("11.2.25" -> "11.02.25") and checks
// that the result is a real calendar date.
func NormalizeDate(s string) (string, error) {
	m := dateRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", fmt.Errorf("%w: date %q", ErrUnrecognized, s)
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	padded := fmt.Sprintf("%02d.%02d.%s", month, day, m[3])
	if _, err := time.Parse(DateLayout, padded); err != nil {
		return "", fmt.Errorf("%w: date %q is not a calendar date", ErrUnrecognized, s)
	}
	return padded, nil
}
