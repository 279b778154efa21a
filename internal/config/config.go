package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server and the CLI.
type Config struct {
	Port       string
	Provider   string
	LogLevel   string
	LogFormat  string
	Timezone   string
	AdminToken string
	NHL        NHLConfig
	Model      ModelConfig
	Data       DataConfig
	Metrics    MetricsConfig
	Cache      CacheConfig
	Archive    ArchiveConfig
	Refresh    RefreshConfig
}

// Load reads configuration from environment variables with sensible defaults.
// An empty AdminToken disables the admin endpoints.
func Load() Config {
	data := loadData()
	return Config{
		Port:       envOrDefault(envPort, defaultPort),
		Provider:   envOrDefault(envProvider, defaultProvider),
		LogLevel:   envOrDefault(envLogLevel, defaultLogLevel),
		LogFormat:  envOrDefault(envLogFormat, defaultLogFormat),
		Timezone:   envOrDefault(envTimezone, defaultTimezone),
		AdminToken: envOrDefault(envAdminToken, ""),
		NHL:        loadNHL(),
		Model:      loadModel(),
		Data:       data,
		Metrics:    loadMetrics(),
		Cache:      loadCache(),
		Archive:    loadArchive(data.Dir),
		Refresh:    loadRefresh(),
	}
}

// LoadDotEnv populates the environment from .env files. Missing files are ignored and
// variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
