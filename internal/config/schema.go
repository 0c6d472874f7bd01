package config

import "log/slog"

// Config represents the full BitFocus configuration
type Config struct {
	Version string `yaml:"version" mapstructure:"version"`

	// Database configuration
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`

	// HTTP server configuration
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Snapshot export configuration
	Snapshot SnapshotConfig `yaml:"snapshot" mapstructure:"snapshot"`

	// Logging configuration
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// DatabaseConfig configures the SQLite store
type DatabaseConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the HTTP API server
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// SnapshotConfig configures snapshot export and import
type SnapshotConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LogConfig configures logging output
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn, error
}

// SlogLevel maps the configured level name onto a slog level. Unknown
// names fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
