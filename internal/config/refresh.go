package config

import "time"

// RefreshConfig controls the background job that rewrites the predictions document.
type RefreshConfig struct {
	Enabled  bool
	Interval time.Duration
	Days     int
}

func loadRefresh() RefreshConfig {
	return RefreshConfig{
		Enabled:  boolEnvOrDefault(envRefreshOn, false),
		Interval: durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		Days:     intEnvOrDefault(envRefreshDays, defaultRefreshDays),
	}
}
