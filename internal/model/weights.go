package model

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights are expressed in percentage points; 10 means each unit of the
// factor differential moves the home probability by 0.10.
type Weights struct {
	HomeIce      float64 `yaml:"home_ice"`
	Last10       float64 `yaml:"last_10"`
	SeasonRecord float64 `yaml:"season_record"`
	Goalie       float64 `yaml:"goalie"`
	SpecialTeams float64 `yaml:"special_teams"`
	HeadToHead   float64 `yaml:"head_to_head"`
	Shots        float64 `yaml:"shots"`
	GoalDiff     float64 `yaml:"goal_diff"`
	XG           float64 `yaml:"xg"`
	Injury       float64 `yaml:"injury"`
}

// DefaultWeights is the hand-tuned weight table.
func DefaultWeights() Weights {
	return Weights{
		HomeIce:      2,
		Last10:       10,
		SeasonRecord: 12,
		Goalie:       6,
		SpecialTeams: 3,
		HeadToHead:   8,
		Shots:        4,
		GoalDiff:     6,
		XG:           4,
		Injury:       3,
	}
}

// Tuning bundles the weight table with the bookmaker margin.
type Tuning struct {
	Weights    Weights `yaml:"weights"`
	BookMargin float64 `yaml:"book_margin"`
}

// DefaultTuning returns the default weights and a 3% margin.
func DefaultTuning() Tuning {
	return Tuning{Weights: DefaultWeights(), BookMargin: 0.03}
}

// LoadTuning reads a YAML tuning file. Keys missing from the file keep their defaults;
// an empty path or a missing file yields DefaultTuning.
func LoadTuning(path string) (Tuning, error) {
	tuning := DefaultTuning()
	if path == "" {
		return tuning, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tuning, nil
		}
		return tuning, fmt.Errorf("read tuning %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return DefaultTuning(), fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if tuning.BookMargin < 0 {
		return DefaultTuning(), fmt.Errorf("parse tuning %s: book_margin must not be negative", path)
	}
	return tuning, nil
}
