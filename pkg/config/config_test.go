package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:5173", cfg.HostURL)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Zero(t, cfg.SlowMotion)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PIZZA_HOST_URL", "http://127.0.0.1:4173/")
	t.Setenv("PIZZA_HEADLESS", "false")
	t.Setenv("PIZZA_TIMEOUT", "3s")
	t.Setenv("PIZZA_SLOW_MOTION", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:4173", cfg.HostURL)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.SlowMotion)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "e2e.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host_url: https://pizza.example.com\ntimeout: 20s\n"), 0o600))
	t.Setenv("PIZZA_CONFIG", path)
	t.Setenv("PIZZA_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://pizza.example.com", cfg.HostURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout, "environment overrides the file")
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoadFs_InMemoryConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/pizza/e2e.json", []byte(`{"headless": false, "browser_bin": "/opt/chrome"}`), 0o600))
	t.Setenv("PIZZA_CONFIG", "/etc/pizza/e2e.json")

	cfg, err := LoadFs(fs)
	require.NoError(t, err)

	assert.False(t, cfg.Headless)
	assert.Equal(t, "/opt/chrome", cfg.BrowserBin)
	assert.Equal(t, "http://localhost:5173", cfg.HostURL)
	assert.Equal(t, "/etc/pizza/e2e.json", cfg.ConfigFile)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("PIZZA_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.ErrorContains(t, err, "read config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad scheme", func(c *Config) { c.HostURL = "localhost:5173" }, "scheme must be http or https"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout must be positive"},
		{"negative slow motion", func(c *Config) { c.SlowMotion = -time.Second }, "slow motion"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestURL(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://localhost:5173/", cfg.URL(""))
	assert.Equal(t, "http://localhost:5173/login", cfg.URL("/login"))
	assert.Equal(t, "http://localhost:5173/diner-dashboard", cfg.URL("diner-dashboard"))
}
