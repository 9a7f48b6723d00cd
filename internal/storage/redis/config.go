package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	URL          string // e.g. redis://localhost:6379/0
	PoolSize     int
	MinIdleConns int

	// KeyPrefix namespaces every key, so several deployments can share a database
	KeyPrefix string

	// MatchTTL is how long a match survives after its last save
	MatchTTL time.Duration
}

// DefaultConfig returns the settings used when only a URL is supplied
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		KeyPrefix:    "wsgame",
		MatchTTL:     24 * time.Hour,
	}
}
