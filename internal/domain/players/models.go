package players

import "strings"

// PositionGoalie is the upstream position code for goaltenders.
const PositionGoalie = "G"

// Injury severities.
const (
	SeverityNone     = 0.0
	SeverityNotable  = 0.5
	SeverityTopScore = 1.0
)

// Candidate is a player search hit.
type Candidate struct {
	ID       int64  `json:"playerId"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

// GoalieAssignment names the starting goalies for one game, by id or by name.
// Zero ids mean "not provided".
type GoalieAssignment struct {
	GameID         int64  `json:"gameId,omitempty"`
	HomeAbbrev     string `json:"homeAbbrev,omitempty"`
	AwayAbbrev     string `json:"awayAbbrev,omitempty"`
	HomeGoalieID   int64  `json:"homeGoalieId,omitempty"`
	AwayGoalieID   int64  `json:"awayGoalieId,omitempty"`
	HomeGoalieName string `json:"homeGoalieName,omitempty"`
	AwayGoalieName string `json:"awayGoalieName,omitempty"`
}

// Matches reports whether the assignment targets the game by id or by team pair.
// Team codes compare case-insensitively.
func (a GoalieAssignment) Matches(gameID int64, home, away string) bool {
	if a.GameID != 0 && a.GameID == gameID {
		return true
	}
	return strings.TrimSpace(a.HomeAbbrev) != "" && SameTeam(a.HomeAbbrev, home) && SameTeam(a.AwayAbbrev, away)
}

// SameTeam compares two team codes ignoring case and surrounding space.
func SameTeam(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// InjuryReport flags a player missing a game.
type InjuryReport struct {
	Team        string `json:"team"`
	Player      string `json:"player"`
	IsTopScorer bool   `json:"isTopScorer"`
}

// Severity is 1.0 for a top scorer and 0.5 for anyone else.
func (r InjuryReport) Severity() float64 {
	if r.IsTopScorer {
		return SeverityTopScore
	}
	return SeverityNotable
}
