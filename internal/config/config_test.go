package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 300*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 200*time.Millisecond, cfg.Highlight.Interval)
	assert.Equal(t, 25, cfg.Highlight.MaxRetries)
	assert.Equal(t, 3*time.Second, cfg.Highlight.Duration)
}

func TestLoadYAMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
api_url: https://assets.example.com/api/
page_size: 25
cache_ttl: 0s
search:
  debounce: 150ms
highlight:
  max_retries: 10
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	t.Setenv(EnvAPIURL, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://assets.example.com/api", cfg.APIURL)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, time.Duration(0), cfg.CacheTTL)
	assert.Equal(t, 150*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 10, cfg.Highlight.MaxRetries)
	// Unset keys keep their defaults.
	assert.Equal(t, 3*time.Second, cfg.Highlight.Duration)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "assets.example.com", cfg.Host())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: http://file:8080/api\n"), 0o600))
	t.Setenv(EnvAPIURL, "http://env:9090/api")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env:9090/api", cfg.APIURL)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_size: [1, 2"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "relative url", mutate: func(c *Config) { c.APIURL = "/api" }},
		{name: "bad scheme", mutate: func(c *Config) { c.APIURL = "ftp://host/api" }},
		{name: "zero page size", mutate: func(c *Config) { c.PageSize = 0 }},
		{name: "negative debounce", mutate: func(c *Config) { c.Search.Debounce = -time.Second }},
		{name: "negative retries", mutate: func(c *Config) { c.Highlight.MaxRetries = -1 }},
		{name: "no session file", mutate: func(c *Config) { c.SessionFile = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
