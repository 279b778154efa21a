// Package poller refreshes the persisted predictions document on an interval.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/predictions"
	"github.com/preston-bernstein/nhl-odds-service/internal/logging"
	"github.com/preston-bernstein/nhl-odds-service/internal/snapshots"
	"github.com/preston-bernstein/nhl-odds-service/internal/timeutil"
)

const (
	defaultInterval = 6 * time.Hour
	defaultDays     = 1
)

// RangeRunner prices consecutive dates.
type RangeRunner interface {
	RunRange(ctx context.Context, start string, days int) ([]predictions.Day, error)
}

// Config controls what each cycle prices.
type Config struct {
	Interval time.Duration
	// Days counts dates priced per cycle, starting tomorrow.
	Days     int
	Location *time.Location
}

// Poller prices upcoming dates on an interval and rewrites the predictions document.
type Poller struct {
	runner   RangeRunner
	writer   snapshots.DocumentWriter
	logger   *slog.Logger
	interval time.Duration
	days     int
	loc      *time.Location
	now      func() time.Time
	newID    func() string

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastRunID           string
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(runner RangeRunner, writer snapshots.DocumentWriter, logger *slog.Logger, cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.Days <= 0 {
		cfg.Days = defaultDays
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Poller{
		runner:   runner,
		writer:   writer,
		logger:   logger,
		interval: cfg.Interval,
		days:     cfg.Days,
		loc:      cfg.Location,
		now:      time.Now,
		newID:    uuid.NewString,
		done:     make(chan struct{}),
	}
}

// Start begins refreshing until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()), slog.Int("days", p.days))
		// Initial refresh so the document exists shortly after boot.
		p.fetchOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.fetchOnce(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

func (p *Poller) fetchOnce(ctx context.Context) {
	start := p.now()
	p.recordAttempt(start)
	runID := p.newID()
	date := timeutil.Tomorrow(start, p.loc)
	logger := p.logger
	if logger != nil {
		logger = logger.With(logging.FieldRunID, runID)
	}

	days, err := p.runner.RunRange(logging.WithLogger(ctx, logger), date, p.days)
	if err != nil {
		logging.Error(logger, "poller refresh failed", err, logging.FieldDate, date)
		p.recordFailure(err, start)
		return
	}

	games := 0
	for _, d := range days {
		games += len(d.Games)
	}
	if p.writer != nil {
		doc := predictions.NewDocument(runID, p.now(), days...)
		if _, err := p.writer.WriteDocument(doc); err != nil {
			logging.Error(logger, "poller document write failed", err)
			p.recordFailure(err, start)
			return
		}
	}
	p.recordSuccess(start, runID)
	logging.Info(logger, "poller refreshed predictions",
		logging.FieldDate, date,
		logging.FieldCount, games,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, runID string) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.LastRunID = runID
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
