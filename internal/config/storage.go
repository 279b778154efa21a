package config

import (
	"path/filepath"
	"strings"
	"time"
)

// CacheConfig controls the optional Redis payload cache.
type CacheConfig struct {
	Enabled  bool
	RedisURL string
	TTL      time.Duration
}

func loadCache() CacheConfig {
	url := envOrDefault(envRedisURL, "")
	return CacheConfig{
		Enabled:  boolEnvOrDefault(envCacheOn, url != ""),
		RedisURL: url,
		TTL:      durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
	}
}

// ArchiveConfig controls where prediction history is kept. An empty driver disables it.
type ArchiveConfig struct {
	Driver string
	DSN    string
}

func loadArchive(dataDir string) ArchiveConfig {
	driver := strings.ToLower(strings.TrimSpace(envOrDefault(envArchiveDriver, defaultArchiveDriver)))
	if driver == "none" || driver == "off" {
		return ArchiveConfig{}
	}
	dsn := envOrDefault(envArchiveDSN, "")
	if dsn == "" && driver == defaultArchiveDriver {
		dsn = filepath.Join(dataDir, archiveFile)
	}
	return ArchiveConfig{Driver: driver, DSN: dsn}
}
