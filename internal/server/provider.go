package server

import (
	"log/slog"

	"github.com/preston-bernstein/nhl-odds-service/internal/config"
	"github.com/preston-bernstein/nhl-odds-service/internal/logging"
	"github.com/preston-bernstein/nhl-odds-service/internal/providers"
	"github.com/preston-bernstein/nhl-odds-service/internal/providers/fixture"
	"github.com/preston-bernstein/nhl-odds-service/internal/providers/nhl"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch cfg.Provider {
	case "nhl", "":
		return nhl.NewClient(nhl.Config{
			WebBaseURL:    cfg.NHL.WebBaseURL,
			StatsBaseURL:  cfg.NHL.StatsBaseURL,
			SearchBaseURL: cfg.NHL.SearchBaseURL,
			APIKey:        cfg.NHL.APIKey,
			Timeout:       cfg.NHL.Timeout,
			Timezone:      cfg.Timezone,
		})
	case "fixture":
		return fixture.New(cfg.Timezone)
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String(logging.FieldProvider, cfg.Provider))
		return fixture.New(cfg.Timezone)
	}
}
