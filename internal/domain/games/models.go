package games

import "strings"

// State is the upstream game lifecycle state (e.g. FUT, LIVE, OFF).
type State string

const (
	StateFuture     State = "FUT"
	StatePregame    State = "PRE"
	StateLive       State = "LIVE"
	StateCritical   State = "CRIT"
	StateInProgress State = "IN_PROGRESS"
	StateFinal      State = "FINAL"
	StateOff        State = "OFF"
	StatePostponed  State = "PPD"
)

// GameTypeRegularSeason is the upstream game type for regular-season games.
const GameTypeRegularSeason = 2

// NormalizeState upper-cases and trims a raw upstream state.
func NormalizeState(raw string) State {
	return State(strings.ToUpper(strings.TrimSpace(raw)))
}

// IsTerminal reports whether the game has finished.
func (s State) IsTerminal() bool {
	return s == StateOff || s == StateFinal
}

// IsStartedOrFinished reports whether the game is live or done and should not be priced.
func (s State) IsStartedOrFinished() bool {
	switch s {
	case StateOff, StateFinal, StateLive, StateCritical, StateInProgress:
		return true
	default:
		return false
	}
}

// Game is an upcoming game on the schedule for a given date.
type Game struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	Season       int    `json:"season,omitempty"`
	HomeTeam     string `json:"homeTeam"`
	AwayTeam     string `json:"awayTeam"`
	HomeTeamID   int    `json:"homeTeamId,omitempty"`
	AwayTeamID   int    `json:"awayTeamId,omitempty"`
	StartTimeUTC string `json:"startTimeUTC,omitempty"`
	LocalTime    string `json:"gameTimeLocal,omitempty"`
	State        State  `json:"state,omitempty"`
}

// TeamScore is one side of a club-schedule game. Score is nil until the game has one.
type TeamScore struct {
	Abbrev string `json:"abbrev"`
	Score  *int   `json:"score,omitempty"`
}

// ClubGame is an entry in a team's full-season schedule.
type ClubGame struct {
	ID       int64     `json:"id"`
	Season   int       `json:"season"`
	GameType int       `json:"gameType"`
	State    State     `json:"gameState"`
	Home     TeamScore `json:"homeTeam"`
	Away     TeamScore `json:"awayTeam"`
}

// IsBetween reports whether the game was played between a and b in either orientation.
func (g ClubGame) IsBetween(a, b string) bool {
	if g.Home.Abbrev == "" || g.Away.Abbrev == "" {
		return false
	}
	return (g.Home.Abbrev == a && g.Away.Abbrev == b) || (g.Home.Abbrev == b && g.Away.Abbrev == a)
}

// Winner returns the winning team's abbreviation; ok is false when either score is missing.
// Equal scores return an empty abbreviation.
func (g ClubGame) Winner() (abbrev string, ok bool) {
	if g.Home.Score == nil || g.Away.Score == nil {
		return "", false
	}
	switch {
	case *g.Home.Score > *g.Away.Score:
		return g.Home.Abbrev, true
	case *g.Away.Score > *g.Home.Score:
		return g.Away.Abbrev, true
	default:
		return "", true
	}
}
