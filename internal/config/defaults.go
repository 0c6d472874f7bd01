package config

import (
	"os"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Database: DatabaseConfig{
			Path: "~/.bitfocus/bitfocus.db",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Snapshot: SnapshotConfig{
			Dir: "~/.bitfocus/snapshots",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// WriteDefault writes the default configuration to a file
func WriteDefault(path string) error {
	content := `# BitFocus Configuration
version: "1"

# SQLite database location
database:
  path: ~/.bitfocus/bitfocus.db

# HTTP API server
server:
  addr: ":8080"

# Snapshot export directory
snapshot:
  dir: ~/.bitfocus/snapshots

# Logging
log:
  level: info  # debug, info, warn, error
`
	return os.WriteFile(path, []byte(content), 0644)
}
