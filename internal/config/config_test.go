package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deadline-reminder/internal/config"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultConfigFileName)

	cfg, err := config.LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultDBName, cfg.DatabasePath)
	assert.Equal(t, 3, cfg.UpcomingDays)
	assert.Equal(t, 30, cfg.CleanupDays)

	_, err = os.Stat(path)
	assert.NoError(t, err, "a default config file is written")
}

func TestLoadOrCreateReadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(
		"database_path = \"planner.db\"\nupcoming_days = 7\ncleanup_days = 0\n",
	), 0o644))

	cfg, err := config.LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, "planner.db", cfg.DatabasePath)
	assert.Equal(t, 7, cfg.UpcomingDays)
	assert.Equal(t, 30, cfg.CleanupDays, "non-positive values fall back to defaults")
}
