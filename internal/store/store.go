package store

import "github.com/preston-bernstein/nhl-odds-service/internal/domain/players"

// InputStore supplies operator-maintained inputs for a YYYY-MM-DD date.
// Dates with no entries yield empty slices, not errors.
type InputStore interface {
	StartingGoalies(date string) ([]players.GoalieAssignment, error)
	Injuries(date string) ([]players.InjuryReport, error)
}
