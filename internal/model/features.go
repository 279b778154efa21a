package model

// LeagueAvgShootingPct converts shot volume into the expected-goals proxy.
const LeagueAvgShootingPct = 0.095

// Neutral values used when an upstream field is missing.
const (
	NeutralWinPct       = 0.5
	NeutralSpecialTeams = 0.5
	NeutralShotsPerGame = 30.0
	NeutralGoalDiff     = 0.0
)

// Side is one team's inputs for a single game.
type Side struct {
	L10WinPct       float64
	SeasonWinPct    float64
	GoalieSavePct   Optional[float64]
	SpecialTeamsAvg float64
	ShotsPerGame    float64
	GoalDiffPerGame float64
	XGPerGame       float64
	// Injury is 0 (none), 0.5 (notable player out) or 1 (top scorer out).
	Injury float64
}

// HeadToHead is the home side's record against this opponent in completed meetings this season.
type HeadToHead struct {
	HomeWinPct float64
	Games      int
}

// Features is the full model input for one game.
type Features struct {
	Home       Side
	Away       Side
	HeadToHead Optional[HeadToHead]
}

// NeutralSide returns a side with every numeric field at its neutral default and no goalie.
func NeutralSide() Side {
	return Side{
		L10WinPct:       NeutralWinPct,
		SeasonWinPct:    NeutralWinPct,
		SpecialTeamsAvg: NeutralSpecialTeams,
		ShotsPerGame:    NeutralShotsPerGame,
		GoalDiffPerGame: NeutralGoalDiff,
		XGPerGame:       XGProxy(NeutralShotsPerGame),
	}
}

// XGProxy is a crude expected-goals stand-in: shot volume times league shooting percentage.
func XGProxy(shotsPerGame float64) float64 {
	return shotsPerGame * LeagueAvgShootingPct
}
