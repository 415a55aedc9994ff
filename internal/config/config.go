package config

import (
	"errors"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "deadline_reminder.db"
)

// Config keeps runtime settings for the planner.
type Config struct {
	// DatabasePath is the SQLite file holding the task snapshot.
	DatabasePath string `toml:"database_path"`
	// UpcomingDays is the reminder window for upcoming tasks.
	UpcomingDays int `toml:"upcoming_days"`
	// CleanupDays is the age after which completed tasks may be purged.
	CleanupDays int `toml:"cleanup_days"`
	// SnapshotMinutes is the interval between background snapshot
	// saves; zero disables the scheduler.
	SnapshotMinutes int `toml:"snapshot_minutes"`
	// Development switches the logger to human-oriented output.
	Development bool `toml:"development"`
}

// LoadOrCreate reads the TOML config at path, writing one with sane
// defaults when it does not exist yet.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = DefaultDBName
	}
	if cfg.UpcomingDays <= 0 {
		cfg.UpcomingDays = 3
	}
	if cfg.CleanupDays <= 0 {
		cfg.CleanupDays = 30
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DatabasePath:    DefaultDBName,
		UpcomingDays:    3,
		CleanupDays:     30,
		SnapshotMinutes: 15,
		Development:     true,
	}
}
