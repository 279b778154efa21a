package config

import "time"

const (
	envPort         = "PORT"
	envProvider     = "PROVIDER"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"
	envTimezone     = "APP_TIMEZONE"
	envAdminToken   = "ADMIN_TOKEN"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	envNHLWebBaseURL    = "NHL_WEB_BASE_URL"
	envNHLStatsBaseURL  = "NHL_STATS_BASE_URL"
	envNHLSearchBaseURL = "NHL_SEARCH_BASE_URL"
	envNHLAPIKey        = "NHL_API_KEY"
	envNHLTimeout       = "NHL_TIMEOUT"
	envNHLRateLimit     = "NHL_RATE_LIMIT"
	envNHLRateBurst     = "NHL_RATE_BURST"

	envTuningPath = "MODEL_TUNING_PATH"

	envDataDir         = "DATA_DIR"
	envGoaliesPath     = "STARTING_GOALIES_PATH"
	envInjuriesPath    = "INJURIES_PATH"
	envPredictionsPath = "PREDICTIONS_PATH"
	envStaticDir       = "STATIC_DIR"

	envRedisURL = "REDIS_URL"
	envCacheTTL = "CACHE_TTL"
	envCacheOn  = "CACHE_ENABLED"

	envArchiveDriver = "ARCHIVE_DRIVER"
	envArchiveDSN    = "ARCHIVE_DSN"

	envRefreshOn       = "REFRESH_ENABLED"
	envRefreshInterval = "REFRESH_INTERVAL"
	envRefreshDays     = "REFRESH_DAYS"

	defaultPort        = "4000"
	defaultProvider    = "nhl"
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
	defaultTimezone    = "America/New_York"
	defaultMetricsPort = "9090"
	defaultServiceName = "nhl-odds-service"

	defaultNHLWebBaseURL    = "https://api-web.nhle.com/v1"
	defaultNHLStatsBaseURL  = "https://api.nhle.com/stats/rest/en"
	defaultNHLSearchBaseURL = "https://search.d3.nhle.com/api/v1"
	defaultNHLTimeout       = 15 * time.Second
	// Requests per second across every NHL endpoint. A single run fans out to a handful of
	// player lookups per game, so this mostly bounds the multi-day CLI.
	defaultNHLRateLimit = 5.0
	defaultNHLRateBurst = 5

	defaultDataDir   = "data"
	defaultStaticDir = "static"
	defaultCacheTTL  = 10 * time.Minute

	defaultArchiveDriver = "sqlite"

	defaultRefreshInterval = 6 * time.Hour
	defaultRefreshDays     = 1

	goaliesFile     = "starting_goalies.json"
	injuriesFile    = "injuries.json"
	predictionsFile = "predictions.json"
	archiveFile     = "history.db"
)
