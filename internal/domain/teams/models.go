package teams

// Standing is a team's season and last-10 record from the league standings.
type Standing struct {
	Abbrev         string `json:"abbrev"`
	Name           string `json:"name"`
	GamesPlayed    int    `json:"gamesPlayed"`
	Wins           int    `json:"wins"`
	Losses         int    `json:"losses"`
	OTLosses       int    `json:"otLosses"`
	L10GamesPlayed int    `json:"l10GamesPlayed"`
	L10Wins        int    `json:"l10Wins"`
	L10Losses      int    `json:"l10Losses"`
	L10OTLosses    int    `json:"l10OtLosses"`
}

// Standings are keyed by team abbreviation.
type Standings map[string]Standing

// WinPct counts overtime losses as half a win; no games played yields 0.5.
func WinPct(wins, otLosses, gamesPlayed int) float64 {
	if gamesPlayed <= 0 {
		return 0.5
	}
	return (float64(wins) + 0.5*float64(otLosses)) / float64(gamesPlayed)
}

// SeasonWinPct is the full-season win fraction.
func (s Standing) SeasonWinPct() float64 {
	return WinPct(s.Wins, s.OTLosses, s.GamesPlayed)
}

// L10WinPct is the win fraction over the last ten games.
func (s Standing) L10WinPct() float64 {
	return WinPct(s.L10Wins, s.L10OTLosses, s.L10GamesPlayed)
}

// NameIndex maps full team names to abbreviations.
func (s Standings) NameIndex() map[string]string {
	index := make(map[string]string, len(s))
	for abbrev, standing := range s {
		if standing.Name != "" {
			index[standing.Name] = abbrev
		}
	}
	return index
}

// SeasonStats are per-team scoring and special-teams aggregates for the season.
// Percentages are fractions (0.25 for 25%).
type SeasonStats struct {
	Abbrev              string  `json:"abbrev"`
	Name                string  `json:"name"`
	GamesPlayed         int     `json:"gamesPlayed"`
	PowerPlayPct        float64 `json:"powerPlayPct"`
	PenaltyKillPct      float64 `json:"penaltyKillPct"`
	ShotsForPerGame     float64 `json:"shotsForPerGame"`
	GoalsForPerGame     float64 `json:"goalsForPerGame"`
	GoalsAgainstPerGame float64 `json:"goalsAgainstPerGame"`
}

// StatsTable is keyed by team abbreviation.
type StatsTable map[string]SeasonStats

// SpecialTeamsAvg averages power-play and penalty-kill percentages.
func (s SeasonStats) SpecialTeamsAvg() float64 {
	return (s.PowerPlayPct + s.PenaltyKillPct) / 2
}

// GoalDiffPerGame is goals for minus goals against, per game.
func (s SeasonStats) GoalDiffPerGame() float64 {
	return s.GoalsForPerGame - s.GoalsAgainstPerGame
}

// IndexStats keys upstream stat rows by abbreviation, matching on full team name.
// Rows whose name is not in the standings are dropped.
func (s Standings) IndexStats(rows []SeasonStats) StatsTable {
	names := s.NameIndex()
	table := make(StatsTable, len(rows))
	for _, row := range rows {
		abbrev, ok := names[row.Name]
		if !ok {
			continue
		}
		row.Abbrev = abbrev
		table[abbrev] = row
	}
	return table
}
