// Package prediction runs the end-to-end pricing pipeline for a date.
package prediction

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/predictions"
	"github.com/preston-bernstein/nhl-odds-service/internal/features"
	"github.com/preston-bernstein/nhl-odds-service/internal/logging"
	"github.com/preston-bernstein/nhl-odds-service/internal/metrics"
	"github.com/preston-bernstein/nhl-odds-service/internal/model"
	"github.com/preston-bernstein/nhl-odds-service/internal/odds"
	"github.com/preston-bernstein/nhl-odds-service/internal/providers"
	"github.com/preston-bernstein/nhl-odds-service/internal/store"
	"github.com/preston-bernstein/nhl-odds-service/internal/timeutil"
)

// ErrInvalidDate is returned for dates that are not YYYY-MM-DD.
var ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

// MaxRangeDays bounds RunRange.
const MaxRangeDays = 60

// Orchestrator fetches inputs, builds features, prices every game and assembles the day payload.
type Orchestrator struct {
	provider   providers.DataProvider
	inputs     store.InputStore
	model      *model.Model
	book       odds.Book
	aggregator *features.Aggregator
	logger     *slog.Logger
	metrics    *metrics.Recorder
	now        func() time.Time
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the fallback logger used when the context carries none.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// WithMetrics records run counts and latency on rec.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(o *Orchestrator) { o.metrics = rec }
}

// New wires an orchestrator. A nil model uses the default weights.
func New(provider providers.DataProvider, inputs store.InputStore, m *model.Model, book odds.Book, opts ...Option) *Orchestrator {
	if m == nil {
		m = model.New(model.DefaultWeights())
	}
	if inputs == nil {
		inputs = store.NewMemoryStore()
	}
	o := &Orchestrator{
		provider: provider,
		inputs:   inputs,
		model:    m,
		book:     book,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.aggregator = features.NewAggregator(provider, o.logger)
	return o
}

// Run prices the games scheduled on date, which is used as given.
// Schedule, standings, team stats and operator inputs are essential; any failure aborts the run.
func (o *Orchestrator) Run(ctx context.Context, date string) (predictions.Day, error) {
	start := o.now()
	day, err := o.run(ctx, date)
	o.metrics.RecordPredictionRun(o.now().Sub(start), len(day.Games), err)
	return day, err
}

func (o *Orchestrator) run(ctx context.Context, date string) (predictions.Day, error) {
	parsed, err := timeutil.ParseDate(date)
	if err != nil {
		return predictions.Day{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if o.provider == nil {
		return predictions.Day{}, providers.ErrProviderUnavailable
	}
	logger := logging.FromContext(ctx, o.logger)
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With(logging.FieldDate, date)

	schedule, err := o.provider.FetchSchedule(ctx, date)
	if err != nil {
		return predictions.Day{}, fmt.Errorf("fetch schedule: %w", err)
	}
	if len(schedule) == 0 {
		logging.Info(logger, "no upcoming games")
		return predictions.NewDay(date, nil), nil
	}

	snap, err := o.snapshot(ctx, date, timeutil.SeasonID(parsed))
	if err != nil {
		return predictions.Day{}, err
	}

	clubs := features.NewClubScheduleCache(o.provider, logger)
	results := make([]predictions.Result, 0, len(schedule))
	for _, game := range schedule {
		if err := ctx.Err(); err != nil {
			return predictions.Day{}, err
		}
		game.Date = date
		results = append(results, o.price(ctx, logger, snap, game, clubs))
	}

	logging.Info(logger, "predictions complete", logging.FieldCount, len(results))
	return predictions.NewDay(date, results), nil
}

func (o *Orchestrator) snapshot(ctx context.Context, date string, season int) (features.Snapshot, error) {
	standings, err := o.provider.FetchStandings(ctx)
	if err != nil {
		return features.Snapshot{}, fmt.Errorf("fetch standings: %w", err)
	}
	rows, err := o.provider.FetchTeamStats(ctx, season)
	if err != nil {
		return features.Snapshot{}, fmt.Errorf("fetch team stats: %w", err)
	}
	goalies, err := o.inputs.StartingGoalies(date)
	if err != nil {
		return features.Snapshot{}, fmt.Errorf("load inputs: %w", err)
	}
	injuries, err := o.inputs.Injuries(date)
	if err != nil {
		return features.Snapshot{}, fmt.Errorf("load inputs: %w", err)
	}

	return features.Snapshot{
		Season:    season,
		Standings: standings,
		Stats:     standings.IndexStats(rows),
		Goalies:   goalies,
		Injuries:  injuries,
	}, nil
}

func (o *Orchestrator) price(ctx context.Context, logger *slog.Logger, snap features.Snapshot, game games.Game, clubs *features.ClubScheduleCache) predictions.Result {
	f := o.aggregator.Build(ctx, snap, game, clubs)
	prob := o.model.Predict(f)
	quote := o.book.Quote(prob)

	if logger.Enabled(ctx, slog.LevelDebug) {
		args := []any{logging.FieldGameID, game.ID, "home", game.HomeTeam, "away", game.AwayTeam, "prob", prob}
		for _, term := range o.model.Breakdown(f) {
			args = append(args, term.Name, term.Value)
		}
		logger.Debug("game priced", args...)
	}

	return predictions.Result{
		GameID:           game.ID,
		Date:             game.Date,
		HomeTeam:         game.HomeTeam,
		AwayTeam:         game.AwayTeam,
		StartTimeUTC:     game.StartTimeUTC,
		LocalTime:        game.LocalTime,
		HomeWinProb:      predictions.RoundProbability(prob),
		HomeAmericanOdds: quote.Home,
		AwayAmericanOdds: quote.Away,
	}
}

// RunRange runs days consecutive dates starting at start, each used as given.
// days is clamped to [1, MaxRangeDays]; the first failing day aborts the range.
func (o *Orchestrator) RunRange(ctx context.Context, start string, days int) ([]predictions.Day, error) {
	if _, err := timeutil.ParseDate(start); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, start)
	}
	days = ClampDays(days)

	out := make([]predictions.Day, 0, days)
	for i := 0; i < days; i++ {
		date, _ := timeutil.AddDays(start, i)
		day, err := o.Run(ctx, date)
		if err != nil {
			return out, fmt.Errorf("%s: %w", date, err)
		}
		out = append(out, day)
	}
	return out, nil
}

// ClampDays bounds a requested day count to [1, MaxRangeDays].
func ClampDays(days int) int {
	if days < 1 {
		return 1
	}
	if days > MaxRangeDays {
		return MaxRangeDays
	}
	return days
}
