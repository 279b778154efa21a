package server

import "time"

const (
	readTimeout = 10 * time.Second
	// A cold prediction run makes several upstream calls per game.
	writeTimeout = 60 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
