package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAppConfig(), cfg)
}

func TestLoadConfig_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "preferences:\n  default_priority: high\nanimation:\n  delete_delay_ms: 50\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, PriorityHigh, cfg.Preferences.DefaultPriority)
	assert.Equal(t, 50, cfg.Animation.DeleteDelayMs)
	assert.Equal(t, 200, cfg.Animation.SubmitDelayMs)
	assert.NotEmpty(t, cfg.Storage.Path)
}

func TestLoadConfig_UnknownPriorityFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preferences:\n  default_priority: urgent\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, cfg.Preferences.DefaultPriority)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultAppConfig()
	cfg.Storage.Path = "/tmp/tasks.db"
	cfg.Preferences.DefaultPriority = PriorityLow
	cfg.Preferences.CompactView = true
	cfg.Profile.Name = "Ada Lovelace"

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/tasks.db", loaded.Storage.Path)
	assert.Equal(t, PriorityLow, loaded.Preferences.DefaultPriority)
	assert.True(t, loaded.Preferences.CompactView)
	assert.Equal(t, "Ada Lovelace", loaded.Profile.Name)
}

func TestLoadConfig_InvalidDigestScheduleFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preferences:\n  digest_schedule: sometimes\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultDigestSchedule, cfg.Preferences.DigestSchedule)
}
