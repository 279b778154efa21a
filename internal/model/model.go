// Package model turns aggregated per-game features into a home win probability.
//
// The model is a hand-tuned linear heuristic: a base rate with home-ice advantage
// plus independent weighted differentials, clamped to [0.01, 0.99].
package model

import "math"

const (
	minProbability = 0.01
	maxProbability = 0.99

	goalieScale       = 10.0
	specialTeamsScale = 5.0
	headToHeadScale   = 2.0
	shotsNormalizer   = 15.0
)

// Term names reported by Breakdown.
const (
	TermBase         = "base"
	TermLast10       = "last_10"
	TermSeason       = "season_record"
	TermGoalie       = "goalie"
	TermSpecialTeams = "special_teams"
	TermHeadToHead   = "head_to_head"
	TermGoalDiff     = "goal_diff"
	TermShots        = "shots"
	TermXG           = "xg"
	TermInjury       = "injury"
)

// Term is a single additive contribution to the home win probability.
type Term struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Model is a pure function of Features with a fixed weight table.
type Model struct {
	weights Weights
}

// New builds a model with the given weights.
func New(weights Weights) *Model {
	return &Model{weights: weights}
}

// Weights returns the weight table in use.
func (m *Model) Weights() Weights {
	return m.weights
}

// Predict returns the probability that the home team wins, in [0.01, 0.99].
func (m *Model) Predict(f Features) float64 {
	prob := 0.0
	for _, term := range m.Breakdown(f) {
		prob += term.Value
	}
	return clamp(prob, minProbability, maxProbability)
}

// Breakdown lists each contributing term before clamping. Terms whose inputs are
// absent (goalie without both save percentages, head-to-head without meetings)
// are left out entirely.
func (m *Model) Breakdown(f Features) []Term {
	w := m.weights
	home, away := f.Home, f.Away

	terms := []Term{
		{TermBase, 0.5 + pct(w.HomeIce)},
		{TermLast10, pct(w.Last10) * (home.L10WinPct - away.L10WinPct)},
		{TermSeason, pct(w.SeasonRecord) * (home.SeasonWinPct - away.SeasonWinPct)},
	}

	homeSV, homeOK := home.GoalieSavePct.Get()
	awaySV, awayOK := away.GoalieSavePct.Get()
	if homeOK && awayOK {
		terms = append(terms, Term{TermGoalie, pct(w.Goalie) * (homeSV - awaySV) * goalieScale})
	}

	terms = append(terms, Term{TermSpecialTeams, pct(w.SpecialTeams) * (home.SpecialTeamsAvg - away.SpecialTeamsAvg) * specialTeamsScale})

	if h2h, ok := f.HeadToHead.Get(); ok && h2h.Games > 0 {
		terms = append(terms, Term{TermHeadToHead, pct(w.HeadToHead) * (h2h.HomeWinPct - 0.5) * headToHeadScale})
	}

	shotDiff := clamp((home.ShotsPerGame-away.ShotsPerGame)/shotsNormalizer, -1, 1)

	return append(terms,
		Term{TermGoalDiff, pct(w.GoalDiff) * (home.GoalDiffPerGame - away.GoalDiffPerGame)},
		Term{TermShots, pct(w.Shots) * shotDiff},
		Term{TermXG, pct(w.XG) * (home.XGPerGame - away.XGPerGame)},
		Term{TermInjury, pct(w.Injury) * (away.Injury - home.Injury)},
	)
}

func pct(points float64) float64 {
	return points / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
