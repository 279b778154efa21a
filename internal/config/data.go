package config

import "path/filepath"

// DataConfig locates operator inputs, the predictions document and static assets.
type DataConfig struct {
	Dir             string
	GoaliesPath     string
	InjuriesPath    string
	PredictionsPath string
	StaticDir       string
}

func loadData() DataConfig {
	dir := envOrDefault(envDataDir, defaultDataDir)
	return DataConfig{
		Dir:             dir,
		GoaliesPath:     envOrDefault(envGoaliesPath, filepath.Join(dir, goaliesFile)),
		InjuriesPath:    envOrDefault(envInjuriesPath, filepath.Join(dir, injuriesFile)),
		PredictionsPath: envOrDefault(envPredictionsPath, filepath.Join(dir, predictionsFile)),
		StaticDir:       envOrDefault(envStaticDir, defaultStaticDir),
	}
}
