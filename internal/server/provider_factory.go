package server

import (
	"log/slog"

	"github.com/preston-bernstein/nhl-odds-service/internal/config"
	"github.com/preston-bernstein/nhl-odds-service/internal/metrics"
	"github.com/preston-bernstein/nhl-odds-service/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + instrumentation).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.DataProvider {
	base := selectProvider(cfg, f.logger)
	return f.wrap(cfg, base)
}

// wrap puts every call behind one shared limiter. Instrumentation sits inside it so
// recorded latency excludes time spent queued.
func (f providerFactory) wrap(cfg config.Config, base providers.DataProvider) providers.DataProvider {
	instrumented := providers.NewInstrumentedProvider(base, normalizeProviderName(cfg.Provider, base), f.metrics, f.logger)
	limiter := providers.NewLimiter(cfg.NHL.RateLimit, cfg.NHL.RateBurst)
	return providers.NewRateLimitedProvider(instrumented, limiter, f.logger)
}

// NewProvider builds the configured upstream behind the shared limiter, without metrics.
// Used by the predict CLI.
func NewProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	return newProviderFactory(logger, nil).build(cfg)
}
