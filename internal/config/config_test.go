package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://pokeapi.co/api/v2", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 500, cfg.API.SpeciesLimit)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "search", cfg.UI.DefaultScreen)
	assert.Empty(t, cfg.Storage.Path)
	assert.False(t, cfg.Persistent())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := isolate(t)

	file := filepath.Join(dir, "pokedex.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
api:
  species_limit: 151
  timeout: 5s
storage:
  path: /var/lib/pokedex
hospital:
  home_latitude: 36.87
`), 0644))
	t.Setenv("POKEDEX_LOGGING_LEVEL", "DEBUG")
	t.Setenv("POKEDEX_UI_DEFAULT_SCREEN", "favorites")

	cfg, err := LoadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, 151, cfg.API.SpeciesLimit)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "/var/lib/pokedex", cfg.Storage.Path)
	assert.True(t, cfg.Persistent())
	assert.InDelta(t, 36.87, cfg.Hospital.HomeLatitude, 1e-9)
	assert.InDelta(t, 30.7, cfg.Hospital.HomeLongitude, 1e-9)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "favorites", cfg.UI.DefaultScreen)
	assert.Equal(t, "https://pokeapi.co/api/v2", cfg.API.BaseURL)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := LoadConfig(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestSaveConfigTo(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Storage.Path = "/srv/pokedex"
	cfg.API.SpeciesLimit = 251
	require.NoError(t, SaveConfigTo(cfg, file))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "species_limit: 251")
	assert.Contains(t, string(data), "path: /srv/pokedex")

	viper.Reset()
	loaded, err := LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, 251, loaded.API.SpeciesLimit)
	assert.Equal(t, "/srv/pokedex", loaded.Storage.Path)
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)

	got, err := ExpandPath("~/data")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data"), got)

	got, err = ExpandPath("/abs/data")
	require.NoError(t, err)
	assert.Equal(t, "/abs/data", got)
}
