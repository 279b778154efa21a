package nhl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/players"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/teams"
	"github.com/preston-bernstein/nhl-odds-service/internal/providers"
	"github.com/preston-bernstein/nhl-odds-service/internal/timeutil"
)

// Config controls how the client reaches the public NHL endpoints.
type Config struct {
	WebBaseURL    string
	StatsBaseURL  string
	SearchBaseURL string
	APIKey        string
	Timeout       time.Duration
	HTTPClient    *http.Client
	Timezone      string
}

// Client fetches schedule, standings, team and player data and maps them to domain models.
type Client struct {
	webBaseURL    string
	statsBaseURL  string
	searchBaseURL string
	apiKey        string
	httpClient    httpDoer
	loc           *time.Location
	now           func() time.Time
}

var _ providers.DataProvider = (*Client)(nil)

// NewClient constructs an NHL client with the provided configuration.
func NewClient(cfg Config) *Client {
	tz := cfg.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	return &Client{
		webBaseURL:    normalizeBaseURL(cfg.WebBaseURL, defaultWebBaseURL),
		statsBaseURL:  normalizeBaseURL(cfg.StatsBaseURL, defaultStatsBaseURL),
		searchBaseURL: normalizeBaseURL(cfg.SearchBaseURL, defaultSearchBaseURL),
		apiKey:        cfg.APIKey,
		httpClient:    resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		loc:           timeutil.LoadLocation(tz),
		now:           time.Now,
	}
}

// FetchSchedule returns the not-yet-started games for date in upstream order.
func (c *Client) FetchSchedule(ctx context.Context, date string) ([]games.Game, error) {
	var payload scheduleResponse
	if err := c.getJSON(ctx, c.webBaseURL+"/schedule/"+url.PathEscape(date), &payload); err != nil {
		return nil, fmt.Errorf("schedule %s: %w", date, err)
	}
	return mapSchedule(payload, date, c.loc), nil
}

// FetchStandings returns current standings keyed by abbreviation.
func (c *Client) FetchStandings(ctx context.Context) (teams.Standings, error) {
	var payload standingsResponse
	if err := c.getJSON(ctx, c.webBaseURL+"/standings/now", &payload); err != nil {
		return nil, fmt.Errorf("standings: %w", err)
	}
	return mapStandings(payload), nil
}

// FetchTeamStats returns regular-season team summary rows for season.
func (c *Client) FetchTeamStats(ctx context.Context, season int) ([]teams.SeasonStats, error) {
	cayenne := url.PathEscape(fmt.Sprintf("gameTypeId=%d and seasonId=%d", games.GameTypeRegularSeason, season))
	endpoint := fmt.Sprintf("%s/team/summary?limit=%d&sort=gamesPlayed&order=desc&cayenneExp=%s",
		c.statsBaseURL, teamSummaryLimit, cayenne)

	var payload teamSummaryResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("team stats %d: %w", season, err)
	}
	return mapTeamStats(payload), nil
}

// FetchClubSchedule returns the team's full current-season schedule.
func (c *Client) FetchClubSchedule(ctx context.Context, abbrev string) ([]games.ClubGame, error) {
	key := strings.ToUpper(strings.TrimSpace(abbrev))
	var payload clubScheduleResponse
	if err := c.getJSON(ctx, c.webBaseURL+"/club-schedule-season/"+url.PathEscape(key)+"/now", &payload); err != nil {
		return nil, fmt.Errorf("club schedule %s: %w", key, err)
	}
	return mapClubSchedule(payload), nil
}

// SearchPlayers returns up to five candidates for name.
func (c *Client) SearchPlayers(ctx context.Context, name string) ([]players.Candidate, error) {
	q := url.Values{}
	q.Set("culture", "en-us")
	q.Set("limit", fmt.Sprintf("%d", searchLimit))
	q.Set("q", strings.TrimSpace(name))

	var payload searchResponse
	if err := c.getJSON(ctx, c.searchBaseURL+"/search/player?"+q.Encode(), &payload); err != nil {
		return nil, fmt.Errorf("player search %q: %w", name, err)
	}
	return mapCandidates(payload), nil
}

// FetchSavePct returns the player's current regular-season save percentage.
func (c *Client) FetchSavePct(ctx context.Context, playerID int64) (float64, error) {
	var payload playerLandingResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/player/%d/landing", c.webBaseURL, playerID), &payload); err != nil {
		return 0, fmt.Errorf("player %d: %w", playerID, err)
	}
	pct := payload.FeaturedStats.RegularSeason.SubSeason.SavePctg
	if pct == nil {
		return 0, fmt.Errorf("player %d save pct: %w", playerID, providers.ErrNoData)
	}
	return *pct, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    "nhl rate limited",
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			URL:        req.URL.Redacted(),
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return nil
}
