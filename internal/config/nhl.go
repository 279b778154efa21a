package config

import "time"

// NHLConfig controls how we talk to the public NHL endpoints.
type NHLConfig struct {
	WebBaseURL    string
	StatsBaseURL  string
	SearchBaseURL string
	APIKey        string
	Timeout       time.Duration
	RateLimit     float64
	RateBurst     int
}

func loadNHL() NHLConfig {
	return NHLConfig{
		WebBaseURL:    envOrDefault(envNHLWebBaseURL, defaultNHLWebBaseURL),
		StatsBaseURL:  envOrDefault(envNHLStatsBaseURL, defaultNHLStatsBaseURL),
		SearchBaseURL: envOrDefault(envNHLSearchBaseURL, defaultNHLSearchBaseURL),
		APIKey:        envOrDefault(envNHLAPIKey, ""),
		Timeout:       durationEnvOrDefault(envNHLTimeout, defaultNHLTimeout),
		RateLimit:     floatEnvOrDefault(envNHLRateLimit, defaultNHLRateLimit),
		RateBurst:     intEnvOrDefault(envNHLRateBurst, defaultNHLRateBurst),
	}
}

// ModelConfig points at the optional tuning file.
type ModelConfig struct {
	TuningPath string
}

func loadModel() ModelConfig {
	return ModelConfig{TuningPath: envOrDefault(envTuningPath, "")}
}
