package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load loads configuration from the global config file, then applies
// BITFOCUS_* environment overrides. Missing files fall back to defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := loadFile(GlobalConfigPath(), cfg); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	applyEnv(cfg)

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// applyEnv overlays environment variables onto cfg. These win over both
// defaults and the config file, so containers and CI can steer the
// process without a home directory.
func applyEnv(cfg *Config) {
	if v := os.Getenv("BITFOCUS_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("BITFOCUS_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("BITFOCUS_SNAPSHOT_DIR"); v != "" {
		cfg.Snapshot.Dir = v
	}
	if v := os.Getenv("BITFOCUS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".bitfocus", "config.yaml")
}

// DataDir returns the path to the BitFocus data directory
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".bitfocus")
}
