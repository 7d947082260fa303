package redis

// Config holds Redis connection settings.
//
// Unlike cache-style deployments, no TTLs are applied here: rooms and
// messages are durable for the lifetime of a game and are never expired.
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
	}
}
