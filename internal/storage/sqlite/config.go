package sqlite

// Config holds SQLite database settings
type Config struct {
	// Path is the database file. Parent directories are created on open.
	Path string

	// BusyTimeoutMS is how long a writer waits for a lock before failing
	BusyTimeoutMS int
}

// DefaultConfig returns sensible defaults for SQLite configuration
func DefaultConfig() Config {
	return Config{
		Path:          "./data/wsgame.db",
		BusyTimeoutMS: 5000,
	}
}
