package providers

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/players"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/teams"
	"github.com/preston-bernstein/nhl-odds-service/internal/logging"
)

const rateLimitedName = "rate-limited"

// rateLimitedProvider shares one token bucket across every upstream operation.
type rateLimitedProvider struct {
	next    DataProvider
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedProvider returns a DataProvider that waits on limiter before each call.
// A nil limiter allows every call through.
func NewRateLimitedProvider(next DataProvider, limiter *rate.Limiter, logger *slog.Logger) DataProvider {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &rateLimitedProvider{
		next:    next,
		limiter: limiter,
		logger:  logger,
	}
}

// NewLimiter builds a limiter from requests per second and burst; non-positive rps disables limiting.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

func (p *rateLimitedProvider) wait(ctx context.Context, op string) error {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "provider unavailable", logging.FieldOperation, op)
		}
		return ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "rate-limited fetch canceled", logging.FieldOperation, op, "err", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

func (p *rateLimitedProvider) FetchSchedule(ctx context.Context, date string) ([]games.Game, error) {
	if err := p.wait(ctx, OpSchedule); err != nil {
		return nil, err
	}
	return p.next.FetchSchedule(ctx, date)
}

func (p *rateLimitedProvider) FetchStandings(ctx context.Context) (teams.Standings, error) {
	if err := p.wait(ctx, OpStandings); err != nil {
		return nil, err
	}
	return p.next.FetchStandings(ctx)
}

func (p *rateLimitedProvider) FetchTeamStats(ctx context.Context, season int) ([]teams.SeasonStats, error) {
	if err := p.wait(ctx, OpTeamStats); err != nil {
		return nil, err
	}
	return p.next.FetchTeamStats(ctx, season)
}

func (p *rateLimitedProvider) FetchClubSchedule(ctx context.Context, abbrev string) ([]games.ClubGame, error) {
	if err := p.wait(ctx, OpClubSchedule); err != nil {
		return nil, err
	}
	return p.next.FetchClubSchedule(ctx, abbrev)
}

func (p *rateLimitedProvider) SearchPlayers(ctx context.Context, name string) ([]players.Candidate, error) {
	if err := p.wait(ctx, OpPlayerSearch); err != nil {
		return nil, err
	}
	return p.next.SearchPlayers(ctx, name)
}

func (p *rateLimitedProvider) FetchSavePct(ctx context.Context, playerID int64) (float64, error) {
	if err := p.wait(ctx, OpSavePct); err != nil {
		return 0, err
	}
	return p.next.FetchSavePct(ctx, playerID)
}
