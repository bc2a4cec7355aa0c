package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goodConfig() Config {
	var c Config
	c.App.Port = 38472
	c.API.BaseURL = "http://127.0.0.1:8000/api"
	c.API.TimeoutSeconds = 20
	c.API.RatePerSecond = 4
	c.API.RateBurst = 8
	c.Views.PageSize = 10
	c.Views.RelatedLimit = 3
	c.Refresh.Enabled = true
	c.Refresh.Seconds = 300
	return c
}

func TestNormalizeAndValidateOK(t *testing.T) {
	out, vr := NormalizeAndValidate(goodConfig())
	assert.True(t, vr.OK())
	assert.Empty(t, vr.Warnings)
	assert.Equal(t, "http://127.0.0.1:8000/api", out.API.BaseURL)
}

func TestNormalizeTrimsBaseURL(t *testing.T) {
	c := goodConfig()
	c.API.BaseURL = "  http://127.0.0.1:8000/api/  "
	out, vr := NormalizeAndValidate(c)
	require.True(t, vr.OK())
	assert.Equal(t, "http://127.0.0.1:8000/api", out.API.BaseURL)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.App.Port = 0 }},
		{"port too high", func(c *Config) { c.App.Port = 70000 }},
		{"missing base url", func(c *Config) { c.API.BaseURL = "" }},
		{"relative base url", func(c *Config) { c.API.BaseURL = "/api" }},
		{"zero timeout", func(c *Config) { c.API.TimeoutSeconds = 0 }},
		{"zero rate", func(c *Config) { c.API.RatePerSecond = 0 }},
		{"zero burst", func(c *Config) { c.API.RateBurst = 0 }},
		{"zero page size", func(c *Config) { c.Views.PageSize = 0 }},
		{"zero related limit", func(c *Config) { c.Views.RelatedLimit = 0 }},
		{"refresh enabled without seconds", func(c *Config) { c.Refresh.Seconds = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := goodConfig()
			tt.mutate(&c)
			_, vr := NormalizeAndValidate(c)
			assert.False(t, vr.OK())
		})
	}
}

func TestValidateWarnings(t *testing.T) {
	c := goodConfig()
	c.API.RatePerSecond = 50
	c.Views.PageSize = 500
	c.Refresh.Seconds = 5

	_, vr := NormalizeAndValidate(c)
	assert.True(t, vr.OK())
	assert.Len(t, vr.Warnings, 3)
}

func TestSaveAtomicRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	cfg := goodConfig()
	require.NoError(t, SaveAtomic(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	// No tmp leftovers after a clean save.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSaveAtomicKeepsBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	first := goodConfig()
	require.NoError(t, SaveAtomic(path, first))

	second := first
	second.App.Port = 39000
	require.NoError(t, SaveAtomic(path, second))

	cur, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 39000, cur.App.Port)

	bak, err := Load(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, 38472, bak.App.Port)
}

func TestSaveAtomicRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	bad := goodConfig()
	bad.API.BaseURL = ""
	require.Error(t, SaveAtomic(path, bad))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "invalid config must not be written")
}

func TestEnsureUserConfig(t *testing.T) {
	defDir := t.TempDir()
	defaultPath := filepath.Join(defDir, "default.yml")
	require.NoError(t, os.WriteFile(defaultPath, []byte("app:\n  port: 38472\n"), 0o644))

	dataDir := t.TempDir()
	userPath, err := EnsureUserConfig(dataDir, defaultPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "config.yml"), userPath)

	b, err := os.ReadFile(userPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "port: 38472")

	// Existing user config is never overwritten.
	require.NoError(t, os.WriteFile(userPath, []byte("app:\n  port: 1234\n"), 0o644))
	again, err := EnsureUserConfig(dataDir, defaultPath)
	require.NoError(t, err)
	b, _ = os.ReadFile(again)
	assert.Contains(t, string(b), "port: 1234")
}

func TestDurationHelpers(t *testing.T) {
	c := goodConfig()
	assert.Equal(t, 20*time.Second, c.Timeout())
	assert.Equal(t, 5*time.Minute, c.RefreshInterval())
}
