package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simplerquests.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, ":42069", cfg.Server.Addr)
	assert.Equal(t, "file", cfg.Storage)
	assert.Equal(t, "all", cfg.Defaults.ViewStyle)
}

func TestLoad_ReadsYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":8080"
data_dir: /tmp/quests
storage: memory
language: en
settings_file: settings.yml
watch_settings: true
defaults:
  view_style: next
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "/tmp/quests", cfg.DataDir)
	assert.Equal(t, "memory", cfg.Storage)
	assert.Equal(t, "settings.yml", cfg.SettingsFile)
	assert.True(t, cfg.WatchSettings)
	assert.Equal(t, "next", cfg.Defaults.ViewStyle)
}

func TestLoad_EmptyValuesFallBackToDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  addr: \"\"\nstorage: \"\"\n"))
	require.NoError(t, err)
	assert.Equal(t, ":42069", cfg.Server.Addr)
	assert.Equal(t, "file", cfg.Storage)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	_, err := Load(writeConfig(t, "storage: postgres\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "defaults:\n  view_style: sideways\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server: [1, 2\n"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SIMPLERQUESTS_ADDR", ":9999")
	t.Setenv("SIMPLERQUESTS_STORAGE", "MEMORY")
	t.Setenv("SIMPLERQUESTS_VIEW_STYLE", "complete")
	t.Setenv("SIMPLERQUESTS_WATCH_SETTINGS", "yes")

	cfg, err := Load(writeConfig(t, "storage: file\n"))
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Storage)
	assert.Equal(t, "complete", cfg.Defaults.ViewStyle)
	assert.True(t, cfg.WatchSettings)
}
