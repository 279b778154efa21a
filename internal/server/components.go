package server

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/nhl-odds-service/internal/archive"
	"github.com/preston-bernstein/nhl-odds-service/internal/cache"
	"github.com/preston-bernstein/nhl-odds-service/internal/config"
	"github.com/preston-bernstein/nhl-odds-service/internal/logging"
	"github.com/preston-bernstein/nhl-odds-service/internal/model"
	"github.com/preston-bernstein/nhl-odds-service/internal/snapshots"
	"github.com/preston-bernstein/nhl-odds-service/internal/store"
)

// components groups the storage pieces around a prediction run.
// Optional backends that fail to start are logged and left out.
type components struct {
	inputs  store.InputStore
	tuning  model.Tuning
	cache   cache.DayCache
	archive *archive.Store
	writer  *snapshots.Writer
}

// cacheOpener and archiveOpener remain vars for tests to override.
var (
	cacheOpener = func(ctx context.Context, cfg config.CacheConfig) (cache.DayCache, error) {
		return cache.NewRedis(ctx, cfg.RedisURL, cfg.TTL)
	}
	archiveOpener = archive.Open
)

func buildComponents(ctx context.Context, cfg config.Config, logger *slog.Logger) components {
	tuning, err := model.LoadTuning(cfg.Model.TuningPath)
	if err != nil {
		logging.Warn(logger, "model tuning unreadable, using defaults", "path", cfg.Model.TuningPath, "err", err)
	}

	return components{
		inputs:  store.NewFileStore(cfg.Data.GoaliesPath, cfg.Data.InjuriesPath),
		tuning:  tuning,
		cache:   buildCache(ctx, cfg.Cache, logger),
		archive: buildArchive(ctx, cfg.Archive, logger),
		writer:  snapshots.NewWriter(cfg.Data.PredictionsPath),
	}
}

func buildCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) cache.DayCache {
	if !cfg.Enabled || cfg.RedisURL == "" {
		return cache.Noop{}
	}
	c, err := cacheOpener(ctx, cfg)
	if err != nil {
		logging.Warn(logger, "redis cache unavailable, continuing without cache", "err", err)
		return cache.Noop{}
	}
	logging.Info(logger, "redis cache enabled", "ttl", cfg.TTL.String())
	return c
}

func buildArchive(ctx context.Context, cfg config.ArchiveConfig, logger *slog.Logger) *archive.Store {
	if cfg.Driver == "" {
		return nil
	}
	a, err := archiveOpener(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		logging.Warn(logger, "prediction archive unavailable, history disabled", "driver", cfg.Driver, "err", err)
		return nil
	}
	logging.Info(logger, "prediction archive enabled", "driver", cfg.Driver)
	return a
}

func (c components) close(logger *slog.Logger) {
	if c.cache != nil {
		if err := c.cache.Close(); err != nil {
			logging.Warn(logger, "cache close failed", "err", err)
		}
	}
	if c.archive != nil {
		if err := c.archive.Close(); err != nil {
			logging.Warn(logger, "archive close failed", "err", err)
		}
	}
}
