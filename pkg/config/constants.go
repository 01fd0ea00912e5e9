package config

import "time"

const (
	// Server ports.
	DefaultGRPCPort = 9090

	// Database defaults.
	DefaultPostgresPort = 5432

	// Connection pool defaults.
	DefaultMaxConnections = 25
	DefaultMinConnections = 5
	DefaultMaxConnLifetime = time.Hour

	// Timeout defaults.
	DefaultMaxConnIdleTime = 30 * time.Minute
	DefaultShutdownTimeout = 30 * time.Second
)
