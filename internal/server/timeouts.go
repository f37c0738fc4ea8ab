package server

import "time"

const (
	readTimeout = 10 * time.Second
	// Admin refresh renders and publishes inside the request.
	writeTimeout = 2 * time.Minute
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
