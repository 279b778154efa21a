package nhl

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

type scheduleResponse struct {
	GameWeek []scheduleDay `json:"gameWeek"`
}

type scheduleDay struct {
	Date  string         `json:"date"`
	Games []scheduleGame `json:"games"`
}

type scheduleGame struct {
	ID           int64    `json:"id"`
	Season       int      `json:"season"`
	GameType     int      `json:"gameType"`
	GameState    string   `json:"gameState"`
	StartTimeUTC string   `json:"startTimeUTC"`
	StartTime    string   `json:"startTime"`
	GameDate     string   `json:"gameDate"`
	HomeTeam     teamSide `json:"homeTeam"`
	AwayTeam     teamSide `json:"awayTeam"`
}

type teamSide struct {
	ID         int          `json:"id"`
	Abbrev     string       `json:"abbrev"`
	TeamAbbrev localizedStr `json:"teamAbbrev"`
	Score      *int         `json:"score"`
}

func (t teamSide) abbrev() string {
	if t.Abbrev != "" {
		return t.Abbrev
	}
	return t.TeamAbbrev.Default
}

type localizedStr struct {
	Default string `json:"default"`
}

type standingsResponse struct {
	Standings []standingRow `json:"standings"`
}

type standingRow struct {
	TeamAbbrev     localizedStr `json:"teamAbbrev"`
	TeamName       localizedStr `json:"teamName"`
	GamesPlayed    int          `json:"gamesPlayed"`
	Wins           int          `json:"wins"`
	Losses         int          `json:"losses"`
	OTLosses       int          `json:"otLosses"`
	L10GamesPlayed int          `json:"l10GamesPlayed"`
	L10Wins        int          `json:"l10Wins"`
	L10Losses      int          `json:"l10Losses"`
	L10OTLosses    int          `json:"l10OtLosses"`
}

type teamSummaryResponse struct {
	Data []teamSummaryRow `json:"data"`
}

type teamSummaryRow struct {
	TeamFullName        string   `json:"teamFullName"`
	GamesPlayed         int      `json:"gamesPlayed"`
	PowerPlayPct        *float64 `json:"powerPlayPct"`
	PenaltyKillPct      *float64 `json:"penaltyKillPct"`
	ShotsForPerGame     *float64 `json:"shotsForPerGame"`
	GoalsForPerGame     *float64 `json:"goalsForPerGame"`
	GoalsAgainstPerGame *float64 `json:"goalsAgainstPerGame"`
}

type clubScheduleResponse struct {
	Games []scheduleGame `json:"games"`
}

type playerLandingResponse struct {
	FeaturedStats struct {
		RegularSeason struct {
			SubSeason struct {
				SavePctg *float64 `json:"savePctg"`
			} `json:"subSeason"`
		} `json:"regularSeason"`
	} `json:"featuredStats"`
}

type searchHit struct {
	PlayerID     flexibleID `json:"playerId"`
	Name         string     `json:"name"`
	Position     string     `json:"position"`
	PositionCode string     `json:"positionCode"`
}

func (h searchHit) position() string {
	if h.Position != "" {
		return h.Position
	}
	return h.PositionCode
}

// searchResponse accepts either a bare list or {"data": [...]}.
type searchResponse []searchHit

func (r *searchResponse) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = nil
		return nil
	}
	if trimmed[0] == '[' {
		var hits []searchHit
		if err := json.Unmarshal(trimmed, &hits); err != nil {
			return err
		}
		*r = hits
		return nil
	}
	var wrapped struct {
		Data []searchHit `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	*r = wrapped.Data
	return nil
}

// flexibleID decodes ids sent as either JSON numbers or numeric strings. Anything else is 0.
type flexibleID int64

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexibleID(v)
	return nil
}
