package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://www.airline-club.com", cfg.API.BaseURL)
	assert.Equal(t, 10, cfg.API.TimeoutSecs)
	assert.Equal(t, 600, cfg.API.CacheTTLSecs)
	assert.InDelta(t, 10.0, cfg.API.RateLimit, 0.001)
	assert.Equal(t, 10, cfg.API.RateBurst)
	assert.Equal(t, 20, cfg.Network.Concurrency)
	assert.Equal(t, 15, cfg.Network.TopN)
	assert.InDelta(t, 20000.0, cfg.Network.DefaultMaxDistanceKm, 0.001)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
api:
  base_url: http://localhost:9000
  timeout_secs: 3
  cookie: session=abc
network:
  concurrency: 5
  top_n: 10
log:
  level: debug
  format: console
server:
  port: 9999
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.API.BaseURL)
	assert.Equal(t, 3, cfg.API.TimeoutSecs)
	assert.Equal(t, "session=abc", cfg.API.Cookie)
	assert.Equal(t, 5, cfg.Network.Concurrency)
	assert.Equal(t, 10, cfg.Network.TopN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9999, cfg.Server.Port)

	// Unset keys keep their defaults.
	assert.Equal(t, 600, cfg.API.CacheTTLSecs)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("NETSCOUT_API_BASE_URL", "http://env.example")
	t.Setenv("NETSCOUT_NETWORK_CONCURRENCY", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://env.example", cfg.API.BaseURL)
	assert.Equal(t, 7, cfg.Network.Concurrency)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "not-a-level"})
	assert.Error(t, err)
}
