package predictions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/nhl-odds-service/internal/cache"
	domain "github.com/preston-bernstein/nhl-odds-service/internal/domain/predictions"
	"github.com/preston-bernstein/nhl-odds-service/internal/logging"
	"github.com/preston-bernstein/nhl-odds-service/internal/metrics"
	"github.com/preston-bernstein/nhl-odds-service/internal/prediction"
	"github.com/preston-bernstein/nhl-odds-service/internal/timeutil"
)

// ErrHistoryDisabled is returned by History when no archive is configured.
var ErrHistoryDisabled = errors.New("prediction history is not enabled")

// Runner prices one date.
type Runner interface {
	Run(ctx context.Context, date string) (domain.Day, error)
}

// Archive records and replays priced days.
type Archive interface {
	Record(ctx context.Context, runID string, day domain.Day) error
	History(ctx context.Context, date string) (domain.Day, error)
}

// Service serves prediction days, sharing concurrent runs for the same date.
type Service struct {
	runner   Runner
	cache    cache.DayCache
	archive  Archive
	logger   *slog.Logger
	metrics  *metrics.Recorder
	newRunID func() string
	group    singleflight.Group
}

// Option customizes a Service.
type Option func(*Service)

// WithCache enables payload caching.
func WithCache(c cache.DayCache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithArchive records each computed day.
func WithArchive(a Archive) Option {
	return func(s *Service) { s.archive = a }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *Service) { s.metrics = rec }
}

// NewService constructs a Service around runner.
func NewService(runner Runner, opts ...Option) *Service {
	s := &Service{
		runner:   runner,
		cache:    cache.Noop{},
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Predict returns the day for date, from cache when possible.
// Cache and archive failures are logged and never fail the request.
func (s *Service) Predict(ctx context.Context, date string) (domain.Day, error) {
	if _, err := timeutil.ParseDate(date); err != nil {
		return domain.Day{}, fmt.Errorf("%w: %q", prediction.ErrInvalidDate, date)
	}
	logger := logging.FromContext(ctx, s.logger)

	day, hit, err := s.cache.Get(ctx, date)
	if err != nil {
		logging.Warn(logger, "cache lookup failed", logging.FieldDate, date, "err", err)
	}
	s.metrics.RecordCacheLookup(hit)
	if hit {
		return day, nil
	}

	// Joined callers must not be cut short when the first caller goes away.
	runCtx := context.WithoutCancel(ctx)
	v, err, shared := s.group.Do(date, func() (any, error) {
		return s.compute(runCtx, logger, date)
	})
	if err != nil {
		return domain.Day{}, err
	}
	if shared {
		logging.Debug(logger, "joined in-flight run", logging.FieldDate, date)
	}
	return v.(domain.Day), nil
}

func (s *Service) compute(ctx context.Context, logger *slog.Logger, date string) (domain.Day, error) {
	runID := s.newRunID()
	day, err := s.runner.Run(logging.WithLogger(ctx, loggerWithRun(logger, runID)), date)
	if err != nil {
		return domain.Day{}, err
	}

	if err := s.cache.Set(ctx, date, day); err != nil {
		logging.Warn(logger, "cache store failed", logging.FieldDate, date, "err", err)
	}
	if s.archive != nil {
		if err := s.archive.Record(ctx, runID, day); err != nil {
			logging.Warn(logger, "archive record failed", logging.FieldDate, date, logging.FieldRunID, runID, "err", err)
		}
	}
	return day, nil
}

// History returns the archived results for date.
func (s *Service) History(ctx context.Context, date string) (domain.Day, error) {
	if s.archive == nil {
		return domain.Day{}, ErrHistoryDisabled
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return domain.Day{}, fmt.Errorf("%w: %q", prediction.ErrInvalidDate, date)
	}
	return s.archive.History(ctx, date)
}

func loggerWithRun(logger *slog.Logger, runID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(logging.FieldRunID, runID)
}
