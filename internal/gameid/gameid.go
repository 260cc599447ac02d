// Package gameid derives the deterministic game identifier.
//
// The key is (date, team): a second export for the same team on the same
// date maps to the same id whatever opponent it names.
package gameid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/courtiq/cogscore/internal/gamefile"
)

// Length is the number of hex characters kept from the digest.
const Length = 16

// Generate returns the first 16 hex chars of sha256(date + "_" + team). The
// date is zero-padded before hashing so "11.2.25" and "11.02.25" agree.
func Generate(dateString, team string) (string, error) {
	date, err := gamefile.NormalizeDate(dateString)
	if err != nil {
		return "", fmt.Errorf("game id: %w", err)
	}
	team = strings.TrimSpace(team)
	if team == "" {
		return "", fmt.Errorf("game id: empty team")
	}
	sum := sha256.Sum256([]byte(date + "_" + team))
	return hex.EncodeToString(sum[:])[:Length], nil
}

// For returns the id of a parsed game.
func For(info gamefile.Info) (string, error) {
	return Generate(info.DateString, info.Team)
}
