// Package report renders prediction days as a terminal odds table.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/predictions"
	"github.com/preston-bernstein/nhl-odds-service/internal/odds"
)

const (
	width = 72
	reset = "\033[0m"
	bold  = "\033[1m"
	plain = "\033[37m"
)

// Approximate primary colors per club.
var teamColors = map[string]string{
	"ANA": "\033[33m", "ARI": "\033[31m", "BOS": "\033[33m", "BUF": "\033[34m",
	"CAR": "\033[31m", "CBJ": "\033[34m", "CGY": "\033[31m", "CHI": "\033[31m",
	"COL": "\033[35m", "DAL": "\033[32m", "DET": "\033[31m", "EDM": "\033[34m",
	"FLA": "\033[31m", "LAK": "\033[37m", "MIN": "\033[32m", "MTL": "\033[31m",
	"NJD": "\033[31m", "NSH": "\033[33m", "NYI": "\033[34m", "NYR": "\033[34m",
	"OTT": "\033[31m", "PHI": "\033[33m", "PIT": "\033[33m", "SEA": "\033[36m",
	"SJS": "\033[36m", "STL": "\033[34m", "TBL": "\033[36m", "TOR": "\033[34m",
	"UTA": "\033[36m", "VAN": "\033[32m", "VGK": "\033[33m", "WPG": "\033[36m",
	"WSH": "\033[31m",
}

// Options controls rendering.
type Options struct {
	Color bool
	// Path and Bytes describe the written document for the footer; an empty Path omits it.
	Path  string
	Bytes int64
}

// ColorEnabled reports whether w is a terminal and NO_COLOR is unset.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Write renders every day followed by a summary footer.
func Write(w io.Writer, days []predictions.Day, opts Options) error {
	var b strings.Builder
	rule := strings.Repeat("=", width)
	total := 0

	for _, day := range days {
		total += len(day.Games)
		b.WriteString("\n" + rule + "\n")
		b.WriteString(opts.emphasize(center("NHL PREDICTED ODDS - "+day.Date)) + "\n")
		b.WriteString(rule + "\n")
		if len(day.Games) == 0 {
			b.WriteString("  No games scheduled for this date.\n")
			continue
		}
		for i, g := range day.Games {
			fmt.Fprintf(&b, "  %2d. %s @ %s", i+1, opts.team(g.AwayTeam), opts.team(g.HomeTeam))
			if g.LocalTime != "" {
				fmt.Fprintf(&b, "  %s", g.LocalTime)
			}
			b.WriteString("\n")
			fmt.Fprintf(&b, "       Home: %+5d   Away: %+5d   (model %.1f%%, implied %.1f%% / %.1f%%)\n\n",
				g.HomeAmericanOdds, g.AwayAmericanOdds,
				g.HomeWinProb*100,
				odds.ImpliedProbability(g.HomeAmericanOdds)*100,
				odds.ImpliedProbability(g.AwayAmericanOdds)*100,
			)
		}
	}

	b.WriteString(rule + "\n")
	if opts.Path != "" {
		fmt.Fprintf(&b, "  Wrote %d game(s) to %s (%s)\n", total, opts.Path, humanize.Bytes(uint64(max(opts.Bytes, 0))))
	} else {
		fmt.Fprintf(&b, "  Priced %d game(s)\n", total)
	}
	b.WriteString(rule + "\n\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func (o Options) team(abbrev string) string {
	if !o.Color {
		return abbrev
	}
	code, ok := teamColors[strings.ToUpper(abbrev)]
	if !ok {
		code = plain
	}
	return bold + code + abbrev + reset
}

func (o Options) emphasize(s string) string {
	if !o.Color {
		return s
	}
	return bold + s + reset
}

func center(s string) string {
	pad := (width - len(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
