package nhl

import "time"

const (
	providerName = "nhl"

	defaultWebBaseURL    = "https://api-web.nhle.com/v1"
	defaultStatsBaseURL  = "https://api.nhle.com/stats/rest/en"
	defaultSearchBaseURL = "https://search.d3.nhle.com/api/v1"
	defaultHTTPTimeout   = 15 * time.Second
	defaultTimezone      = "America/New_York"
	userAgent            = "nhl-odds-service/1.0"

	teamSummaryLimit = 50
	searchLimit      = 5
	errorBodyLimit   = 512
)
