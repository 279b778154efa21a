package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/players"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/teams"
	"github.com/preston-bernstein/nhl-odds-service/internal/logging"
	"github.com/preston-bernstein/nhl-odds-service/internal/metrics"
)

// instrumentedProvider records one metrics attempt per upstream call and logs failures.
// Calls are never retried.
type instrumentedProvider struct {
	next    DataProvider
	name    string
	metrics *metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

// NewInstrumentedProvider wraps next with latency, error and rate-limit recording under name.
func NewInstrumentedProvider(next DataProvider, name string, recorder *metrics.Recorder, logger *slog.Logger) DataProvider {
	return &instrumentedProvider{
		next:    next,
		name:    name,
		metrics: recorder,
		logger:  logger,
		now:     time.Now,
	}
}

func (p *instrumentedProvider) observe(ctx context.Context, op string, start time.Time, err error, args ...any) {
	elapsed := p.now().Sub(start)
	p.metrics.RecordProviderAttempt(p.name, elapsed, err)

	args = append(args, logging.FieldOperation, op, logging.FieldDurationMS, elapsed.Milliseconds())
	if err == nil {
		logWithProvider(ctx, p.logger, slog.LevelDebug, p.name, "provider call ok", args...)
		return
	}
	if rl, ok := AsRateLimitError(err); ok {
		p.metrics.RecordRateLimit(p.name, rl.RetryAfter)
		args = append(args, "retry_after", rl.RetryAfter.String())
	}
	args = append(args, "err", err)
	logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "provider call failed", args...)
}

func (p *instrumentedProvider) FetchSchedule(ctx context.Context, date string) ([]games.Game, error) {
	if p.next == nil {
		return nil, ErrProviderUnavailable
	}
	start := p.now()
	out, err := p.next.FetchSchedule(ctx, date)
	p.observe(ctx, OpSchedule, start, err, logging.FieldDate, date, logging.FieldCount, len(out))
	return out, err
}

func (p *instrumentedProvider) FetchStandings(ctx context.Context) (teams.Standings, error) {
	if p.next == nil {
		return nil, ErrProviderUnavailable
	}
	start := p.now()
	out, err := p.next.FetchStandings(ctx)
	p.observe(ctx, OpStandings, start, err, logging.FieldCount, len(out))
	return out, err
}

func (p *instrumentedProvider) FetchTeamStats(ctx context.Context, season int) ([]teams.SeasonStats, error) {
	if p.next == nil {
		return nil, ErrProviderUnavailable
	}
	start := p.now()
	out, err := p.next.FetchTeamStats(ctx, season)
	p.observe(ctx, OpTeamStats, start, err, "season", season, logging.FieldCount, len(out))
	return out, err
}

func (p *instrumentedProvider) FetchClubSchedule(ctx context.Context, abbrev string) ([]games.ClubGame, error) {
	if p.next == nil {
		return nil, ErrProviderUnavailable
	}
	start := p.now()
	out, err := p.next.FetchClubSchedule(ctx, abbrev)
	p.observe(ctx, OpClubSchedule, start, err, logging.FieldTeam, abbrev, logging.FieldCount, len(out))
	return out, err
}

func (p *instrumentedProvider) SearchPlayers(ctx context.Context, name string) ([]players.Candidate, error) {
	if p.next == nil {
		return nil, ErrProviderUnavailable
	}
	start := p.now()
	out, err := p.next.SearchPlayers(ctx, name)
	p.observe(ctx, OpPlayerSearch, start, err, "query", name, logging.FieldCount, len(out))
	return out, err
}

func (p *instrumentedProvider) FetchSavePct(ctx context.Context, playerID int64) (float64, error) {
	if p.next == nil {
		return 0, ErrProviderUnavailable
	}
	start := p.now()
	out, err := p.next.FetchSavePct(ctx, playerID)
	p.observe(ctx, OpSavePct, start, err, "player_id", playerID)
	return out, err
}
