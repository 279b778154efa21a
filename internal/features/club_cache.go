package features

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-odds-service/internal/logging"
	"github.com/preston-bernstein/nhl-odds-service/internal/providers"
)

// ClubScheduleCache memoizes club schedules for one run, failures included.
type ClubScheduleCache struct {
	provider providers.ClubScheduleProvider
	logger   *slog.Logger

	mu      sync.Mutex
	entries map[string][]games.ClubGame
}

// NewClubScheduleCache returns an empty cache in front of provider.
func NewClubScheduleCache(provider providers.ClubScheduleProvider, logger *slog.Logger) *ClubScheduleCache {
	return &ClubScheduleCache{
		provider: provider,
		logger:   logger,
		entries:  make(map[string][]games.ClubGame),
	}
}

// Get returns the team's schedule; an upstream failure is logged and cached as empty.
func (c *ClubScheduleCache) Get(ctx context.Context, abbrev string) []games.ClubGame {
	key := strings.ToUpper(strings.TrimSpace(abbrev))

	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.entries[key]; ok {
		return cached
	}

	var schedule []games.ClubGame
	if c.provider != nil && key != "" {
		fetched, err := c.provider.FetchClubSchedule(ctx, key)
		if err != nil {
			logging.Warn(logging.FromContext(ctx, c.logger), "club schedule unavailable", logging.FieldTeam, key, "err", err)
		} else {
			schedule = fetched
		}
	}
	if schedule == nil {
		schedule = []games.ClubGame{}
	}
	c.entries[key] = schedule
	return schedule
}

// Len reports how many teams are cached.
func (c *ClubScheduleCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
