package store

import (
	"sync"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/players"
)

// MemoryStore keeps operator inputs in memory, keyed by date.
type MemoryStore struct {
	mu       sync.RWMutex
	goalies  map[string][]players.GoalieAssignment
	injuries map[string][]players.InjuryReport
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		goalies:  make(map[string][]players.GoalieAssignment),
		injuries: make(map[string][]players.InjuryReport),
	}
}

// StartingGoalies returns a copy of the assignments for date.
func (s *MemoryStore) StartingGoalies(date string) ([]players.GoalieAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]players.GoalieAssignment{}, s.goalies[date]...), nil
}

// Injuries returns a copy of the injury reports for date.
func (s *MemoryStore) Injuries(date string) ([]players.InjuryReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]players.InjuryReport{}, s.injuries[date]...), nil
}

// SetStartingGoalies replaces the assignments for date.
func (s *MemoryStore) SetStartingGoalies(date string, assignments []players.GoalieAssignment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goalies[date] = append([]players.GoalieAssignment(nil), assignments...)
}

// SetInjuries replaces the injury reports for date.
func (s *MemoryStore) SetInjuries(date string, reports []players.InjuryReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.injuries[date] = append([]players.InjuryReport(nil), reports...)
}
