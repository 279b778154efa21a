// Package cache stores rendered prediction days between requests.
package cache

import (
	"context"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/predictions"
)

// DayCache looks up and stores prediction days by date.
// A miss is (zero, false, nil); errors are reserved for backend failures.
type DayCache interface {
	Get(ctx context.Context, date string) (predictions.Day, bool, error)
	Set(ctx context.Context, date string, day predictions.Day) error
	Close() error
}

// Noop never hits and discards writes.
type Noop struct{}

func (Noop) Get(context.Context, string) (predictions.Day, bool, error) {
	return predictions.Day{}, false, nil
}

func (Noop) Set(context.Context, string, predictions.Day) error { return nil }

func (Noop) Close() error { return nil }
