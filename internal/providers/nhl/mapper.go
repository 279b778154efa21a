package nhl

import (
	"time"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/players"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/teams"
	"github.com/preston-bernstein/nhl-odds-service/internal/timeutil"
)

const defaultShotsPerGame = 30.0

// mapSchedule keeps only games on the target date that have not started.
func mapSchedule(resp scheduleResponse, date string, loc *time.Location) []games.Game {
	out := make([]games.Game, 0)
	for _, day := range resp.GameWeek {
		if day.Date != date {
			continue
		}
		for _, g := range day.Games {
			state := games.NormalizeState(g.GameState)
			if state.IsStartedOrFinished() {
				continue
			}
			out = append(out, mapGame(g, day.Date, state, loc))
		}
	}
	return out
}

func mapGame(g scheduleGame, date string, state games.State, loc *time.Location) games.Game {
	start := g.startTime()
	return games.Game{
		ID:           g.ID,
		Date:         date,
		Season:       g.Season,
		HomeTeam:     g.HomeTeam.abbrev(),
		AwayTeam:     g.AwayTeam.abbrev(),
		HomeTeamID:   g.HomeTeam.ID,
		AwayTeamID:   g.AwayTeam.ID,
		StartTimeUTC: start,
		LocalTime:    timeutil.LocalLabel(start, loc),
		State:        state,
	}
}

// startTime picks the first populated start field. encoding/json folds key case,
// so startTimeUtc lands in StartTimeUTC.
func (g scheduleGame) startTime() string {
	for _, v := range []string{g.StartTimeUTC, g.StartTime, g.GameDate} {
		if v != "" {
			return v
		}
	}
	return ""
}

func mapStandings(resp standingsResponse) teams.Standings {
	out := make(teams.Standings, len(resp.Standings))
	for _, row := range resp.Standings {
		abbrev := row.TeamAbbrev.Default
		if abbrev == "" {
			continue
		}
		out[abbrev] = teams.Standing{
			Abbrev:         abbrev,
			Name:           row.TeamName.Default,
			GamesPlayed:    row.GamesPlayed,
			Wins:           row.Wins,
			Losses:         row.Losses,
			OTLosses:       row.OTLosses,
			L10GamesPlayed: row.L10GamesPlayed,
			L10Wins:        row.L10Wins,
			L10Losses:      row.L10Losses,
			L10OTLosses:    row.L10OTLosses,
		}
	}
	return out
}

func mapTeamStats(resp teamSummaryResponse) []teams.SeasonStats {
	out := make([]teams.SeasonStats, 0, len(resp.Data))
	for _, row := range resp.Data {
		if row.TeamFullName == "" {
			continue
		}
		out = append(out, teams.SeasonStats{
			Name:                row.TeamFullName,
			GamesPlayed:         row.GamesPlayed,
			PowerPlayPct:        valueOr(row.PowerPlayPct, 0),
			PenaltyKillPct:      valueOr(row.PenaltyKillPct, 0),
			ShotsForPerGame:     valueOr(row.ShotsForPerGame, defaultShotsPerGame),
			GoalsForPerGame:     valueOr(row.GoalsForPerGame, 0),
			GoalsAgainstPerGame: valueOr(row.GoalsAgainstPerGame, 0),
		})
	}
	return out
}

func mapClubSchedule(resp clubScheduleResponse) []games.ClubGame {
	out := make([]games.ClubGame, 0, len(resp.Games))
	for _, g := range resp.Games {
		out = append(out, games.ClubGame{
			ID:       g.ID,
			Season:   g.Season,
			GameType: g.GameType,
			State:    games.NormalizeState(g.GameState),
			Home:     games.TeamScore{Abbrev: g.HomeTeam.abbrev(), Score: g.HomeTeam.Score},
			Away:     games.TeamScore{Abbrev: g.AwayTeam.abbrev(), Score: g.AwayTeam.Score},
		})
	}
	return out
}

func mapCandidates(hits searchResponse) []players.Candidate {
	out := make([]players.Candidate, 0, len(hits))
	for _, h := range hits {
		out = append(out, players.Candidate{
			ID:       int64(h.PlayerID),
			Name:     h.Name,
			Position: h.position(),
		})
	}
	return out
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
