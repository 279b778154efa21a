package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/players"
)

// FileStore reads starting goalies and injuries from JSON files keyed by date.
// Files are re-read on every call so edits apply to the next run.
type FileStore struct {
	goaliesPath  string
	injuriesPath string
}

// NewFileStore builds a FileStore; an empty path behaves like a missing file.
func NewFileStore(goaliesPath, injuriesPath string) *FileStore {
	return &FileStore{goaliesPath: goaliesPath, injuriesPath: injuriesPath}
}

// StartingGoalies returns the assignments listed under date.
func (s *FileStore) StartingGoalies(date string) ([]players.GoalieAssignment, error) {
	var byDate map[string][]players.GoalieAssignment
	if err := readDateMap(s.goaliesPath, &byDate); err != nil {
		return nil, fmt.Errorf("starting goalies: %w", err)
	}
	return nonNil(byDate[date]), nil
}

// Injuries returns the injury reports listed under date.
func (s *FileStore) Injuries(date string) ([]players.InjuryReport, error) {
	var byDate map[string][]players.InjuryReport
	if err := readDateMap(s.injuriesPath, &byDate); err != nil {
		return nil, fmt.Errorf("injuries: %w", err)
	}
	return nonNil(byDate[date]), nil
}

func readDateMap(path string, dest any) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
