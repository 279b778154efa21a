package features

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/players"
)

const (
	goaliePreferenceWindow = 3
	candidateWindow        = 5
)

// FoldName strips diacritics and collapses whitespace, keeping case ("Montréal  Canadiens" -> "Montreal Canadiens").
func FoldName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if !unicode.Is(unicode.Mn, r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// PickCandidate prefers a goalie among the first three hits, then any id among the first five.
func PickCandidate(cands []players.Candidate) (int64, bool) {
	for i, c := range cands {
		if i >= goaliePreferenceWindow {
			break
		}
		if c.ID != 0 && strings.EqualFold(c.Position, players.PositionGoalie) {
			return c.ID, true
		}
	}
	for i, c := range cands {
		if i >= candidateWindow {
			break
		}
		if c.ID != 0 {
			return c.ID, true
		}
	}
	return 0, false
}
