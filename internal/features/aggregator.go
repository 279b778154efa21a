// Package features assembles model inputs for a game from upstream data and operator inputs.
package features

import (
	"context"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/players"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/teams"
	"github.com/preston-bernstein/nhl-odds-service/internal/logging"
	"github.com/preston-bernstein/nhl-odds-service/internal/model"
	"github.com/preston-bernstein/nhl-odds-service/internal/providers"
)

// Lookups are the per-game upstream calls. All of them are optional inputs.
type Lookups interface {
	providers.PlayerSearchProvider
	providers.PlayerStatsProvider
}

// Snapshot is the data fetched once per run and shared by every game.
type Snapshot struct {
	Season    int
	Standings teams.Standings
	Stats     teams.StatsTable
	Goalies   []players.GoalieAssignment
	Injuries  []players.InjuryReport
}

// Aggregator builds model.Features for one game at a time.
type Aggregator struct {
	lookups Lookups
	logger  *slog.Logger
}

// NewAggregator returns an aggregator backed by lookups.
func NewAggregator(lookups Lookups, logger *slog.Logger) *Aggregator {
	return &Aggregator{lookups: lookups, logger: logger}
}

// Build never fails: missing or failed optional inputs fall back to neutral values or None.
func (a *Aggregator) Build(ctx context.Context, snap Snapshot, game games.Game, clubs *ClubScheduleCache) model.Features {
	logger := logging.FromContext(ctx, a.logger)

	home := teamSide(snap, game.HomeTeam)
	away := teamSide(snap, game.AwayTeam)

	home.Injury = InjurySeverity(snap.Injuries, game.HomeTeam)
	away.Injury = InjurySeverity(snap.Injuries, game.AwayTeam)

	if assignment, ok := findAssignment(snap.Goalies, game); ok {
		home.GoalieSavePct = a.goalieSavePct(ctx, logger, game, assignment.HomeGoalieID, assignment.HomeGoalieName)
		away.GoalieSavePct = a.goalieSavePct(ctx, logger, game, assignment.AwayGoalieID, assignment.AwayGoalieName)
	}

	h2h := model.None[model.HeadToHead]()
	if clubs != nil {
		h2h = HeadToHead(clubs.Get(ctx, game.HomeTeam), game.HomeTeam, game.AwayTeam, snap.Season)
	}

	return model.Features{Home: home, Away: away, HeadToHead: h2h}
}

func teamSide(snap Snapshot, abbrev string) model.Side {
	side := model.NeutralSide()
	if standing, ok := snap.Standings[abbrev]; ok {
		side.L10WinPct = standing.L10WinPct()
		side.SeasonWinPct = standing.SeasonWinPct()
	}
	if stats, ok := snap.Stats[abbrev]; ok {
		side.SpecialTeamsAvg = stats.SpecialTeamsAvg()
		side.ShotsPerGame = stats.ShotsForPerGame
		side.GoalDiffPerGame = stats.GoalDiffPerGame()
		side.XGPerGame = model.XGProxy(stats.ShotsForPerGame)
	}
	return side
}

// InjurySeverity is the worst severity reported for team, or 0.
func InjurySeverity(reports []players.InjuryReport, team string) float64 {
	worst := players.SeverityNone
	for _, r := range reports {
		if !players.SameTeam(r.Team, team) {
			continue
		}
		if sev := r.Severity(); sev > worst {
			worst = sev
		}
	}
	return worst
}

func findAssignment(assignments []players.GoalieAssignment, game games.Game) (players.GoalieAssignment, bool) {
	for _, a := range assignments {
		if a.Matches(game.ID, game.HomeTeam, game.AwayTeam) {
			return a, true
		}
	}
	return players.GoalieAssignment{}, false
}

func (a *Aggregator) goalieSavePct(ctx context.Context, logger *slog.Logger, game games.Game, id int64, name string) model.Optional[float64] {
	if a.lookups == nil {
		return model.None[float64]()
	}
	if id == 0 && strings.TrimSpace(name) != "" {
		resolved, ok := a.resolvePlayerID(ctx, logger, name)
		if !ok {
			logging.Warn(logger, "goalie not found", logging.FieldGameID, game.ID, "goalie", name)
			return model.None[float64]()
		}
		id = resolved
	}
	if id == 0 {
		return model.None[float64]()
	}

	pct, err := a.lookups.FetchSavePct(ctx, id)
	if err != nil {
		logging.Warn(logger, "goalie save pct unavailable", logging.FieldGameID, game.ID, "player_id", id, "err", err)
		return model.None[float64]()
	}
	return model.Some(pct)
}

// resolvePlayerID searches by name, retrying once with diacritics folded when the raw name finds nothing.
func (a *Aggregator) resolvePlayerID(ctx context.Context, logger *slog.Logger, name string) (int64, bool) {
	queries := []string{strings.TrimSpace(name)}
	if folded := FoldName(name); folded != queries[0] {
		queries = append(queries, folded)
	}

	for _, q := range queries {
		cands, err := a.lookups.SearchPlayers(ctx, q)
		if err != nil {
			logging.Warn(logger, "player search failed", "query", q, "err", err)
			return 0, false
		}
		if id, ok := PickCandidate(cands); ok {
			return id, true
		}
	}
	return 0, false
}
