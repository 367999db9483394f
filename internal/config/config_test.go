package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader(t *testing.T) (*Loader, string) {
	t.Helper()
	dir := t.TempDir()
	return NewLoader(dir, filepath.Join(dir, "missing.env")), dir
}

func TestLoad_Defaults(t *testing.T) {
	l, _ := newTestLoader(t)

	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "bolt", cfg.Store.Backend)
	assert.Equal(t, 2, cfg.Prayer.Method)
	assert.False(t, cfg.Prayer.HasLocation())
	assert.Equal(t, "ar.muyassar", cfg.Quran.TranslationEdition)
	assert.Equal(t, 20, cfg.Hadith.Limit)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Zero(t, cfg.Cache.Hadiths)
}

func TestLoad_File(t *testing.T) {
	l, dir := newTestLoader(t)
	yaml := `
store:
  backend: memory
cache:
  hadiths_ttl: 6h
prayer:
  method: 4
  latitude: 21.4225
  longitude: 39.8262
  city: Mecca
ui:
  theme: light
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, 6*time.Hour, cfg.Cache.Hadiths)
	assert.Equal(t, 4, cfg.Prayer.Method)
	assert.True(t, cfg.Prayer.HasLocation())
	assert.Equal(t, "Mecca", cfg.Prayer.City)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), l.ConfigFile())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	l, dir := newTestLoader(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("ui:\n  theme: light\n"), 0644))

	t.Setenv("NOOR_UI_THEME", "dark")
	t.Setenv("NOOR_STORE_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("NOOR_API_TIMEOUT", "3s")

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "redis.internal:6380", cfg.Store.Redis.Addr)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("NOOR_HADITH_LIMIT=40\n"), 0644))
	t.Cleanup(func() { _ = os.Unsetenv("NOOR_HADITH_LIMIT") })

	cfg, err := NewLoader(dir, envFile).Load()
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Hadith.Limit)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"backend", "store:\n  backend: sqlite\n"},
		{"theme", "ui:\n  theme: neon\n"},
		{"latitude", "prayer:\n  latitude: 95\n"},
		{"malformed", "ui: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, dir := newTestLoader(t)
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(tt.yaml), 0644))

			_, err := l.Load()
			assert.Error(t, err)
		})
	}
}

func TestSaveLocation(t *testing.T) {
	l, dir := newTestLoader(t)
	_, err := l.Load()
	require.NoError(t, err)

	require.NoError(t, l.SaveLocation(24.4661, 39.6142, "Medina"))
	assert.FileExists(t, filepath.Join(dir, "config.yaml"))

	cfg, err := NewLoader(dir, filepath.Join(dir, "missing.env")).Load()
	require.NoError(t, err)
	assert.InDelta(t, 24.4661, cfg.Prayer.Latitude, 1e-9)
	assert.InDelta(t, 39.6142, cfg.Prayer.Longitude, 1e-9)
	assert.Equal(t, "Medina", cfg.Prayer.City)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "noor", "noor.log"), expandHome("~/noor/noor.log"))
	assert.Equal(t, "/var/log/noor.log", expandHome("/var/log/noor.log"))
}
