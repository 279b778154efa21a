package providers

import (
	"context"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/players"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/teams"
)

// ScheduleProvider lists the games on a YYYY-MM-DD date that have not started yet.
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, date string) ([]games.Game, error)
}

// StandingsProvider fetches current standings keyed by team abbreviation.
type StandingsProvider interface {
	FetchStandings(ctx context.Context) (teams.Standings, error)
}

// TeamStatsProvider fetches regular-season team aggregates for a season id (e.g. 20242025).
// Rows carry the full team name; callers join them to standings.
type TeamStatsProvider interface {
	FetchTeamStats(ctx context.Context, season int) ([]teams.SeasonStats, error)
}

// ClubScheduleProvider fetches one team's full current-season schedule.
type ClubScheduleProvider interface {
	FetchClubSchedule(ctx context.Context, abbrev string) ([]games.ClubGame, error)
}

// PlayerSearchProvider looks players up by name, best match first.
type PlayerSearchProvider interface {
	SearchPlayers(ctx context.Context, name string) ([]players.Candidate, error)
}

// PlayerStatsProvider fetches a goalie's current regular-season save percentage.
// ErrNoData is returned when the player has none.
type PlayerStatsProvider interface {
	FetchSavePct(ctx context.Context, playerID int64) (float64, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	ScheduleProvider
	StandingsProvider
	TeamStatsProvider
	ClubScheduleProvider
	PlayerSearchProvider
	PlayerStatsProvider
}

// Operation names used in logs and metrics.
const (
	OpSchedule     = "schedule"
	OpStandings    = "standings"
	OpTeamStats    = "team_stats"
	OpClubSchedule = "club_schedule"
	OpPlayerSearch = "player_search"
	OpSavePct      = "save_pct"
)
