package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir stands in for testing.T.Chdir, which needs Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{"PORT", "ENV", "BACKEND_URL", "SESSION_SECRET", "SESSION_TTL", "REDIS_URL", "ACTION_LIMIT_PER_MINUTE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30, cfg.ActionLimit)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "Production")
	t.Setenv("BACKEND_URL", "https://xrpl.example.com")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("ACTION_LIMIT_PER_MINUTE", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Zero(t, cfg.ActionLimit)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:           "9000",
			Env:            "development",
			BackendURL:     "http://localhost:8000",
			BackendTimeout: time.Second,
			SessionSecret:  "secret",
			SessionTTL:     time.Hour,
			ActivityDBPath: "db",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Port = "http" }},
		{"backend url", func(c *Config) { c.BackendURL = "localhost" }},
		{"empty secret", func(c *Config) { c.SessionSecret = "" }},
		{"default secret in production", func(c *Config) { c.Env = "production"; c.SessionSecret = insecureSecret }},
		{"ttl", func(c *Config) { c.SessionTTL = 0 }},
		{"timeout", func(c *Config) { c.BackendTimeout = -time.Second }},
		{"db path", func(c *Config) { c.ActivityDBPath = "" }},
		{"limit", func(c *Config) { c.ActionLimit = -1 }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
