package core

// ConnConfig holds configuration for connecting to a database.
type ConnConfig struct {
	// Type selects the adapter (e.g. "sqlite", "postgres", "mysql",
	// "duckdb").
	Type string

	// Path is the file path for file-based databases. Use ":memory:"
	// for an in-memory database.
	Path string

	// Host and Port locate network-based databases.
	Host string
	Port int

	// Database is the database name.
	Database string

	// Username and Password authenticate the connection.
	Username string
	Password string

	// Schema is the default schema to introspect and qualify with.
	Schema string

	// Options carries driver-specific settings (e.g. sslmode).
	Options map[string]string
}
