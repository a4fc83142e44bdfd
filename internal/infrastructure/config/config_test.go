package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	assert.Equal(t, "https://teveclub.hu", cfg.Upstream.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Upstream.Timeout)

	assert.Equal(t, 500*time.Millisecond, cfg.Client.FeedDelay)
	assert.Equal(t, 10, cfg.Client.MaxFeedAttempts)
	assert.Empty(t, cfg.Client.ServerURL)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "csrftoken", cfg.Security.CSRFCookie)
	assert.Equal(t, "X-CSRFToken", cfg.Security.CSRFHeader)

	require.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":               "9000",
		"HOST":               "127.0.0.1",
		"TEVECLUB_BASE_URL":  "http://localhost:9999",
		"UPSTREAM_TIMEOUT":   "5s",
		"SERVER_URL":         "http://localhost:8000",
		"FEED_DELAY":         "50ms",
		"MAX_FEED_ATTEMPTS":  "3",
		"LOG_LEVEL":          "debug",
		"LOG_DEV":            "true",
		"RATE_LIMIT_ENABLED": "false",
		"ALLOWED_ORIGINS":    "http://a.test,http://b.test",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "http://localhost:9999", cfg.Upstream.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "http://localhost:8000", cfg.Client.ServerURL)
	assert.Equal(t, 50*time.Millisecond, cfg.Client.FeedDelay)
	assert.Equal(t, 3, cfg.Client.MaxFeedAttempts)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Security.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "cap above ten", mutate: func(c *Config) { c.Client.MaxFeedAttempts = 11 }, wantErr: true},
		{name: "cap zero", mutate: func(c *Config) { c.Client.MaxFeedAttempts = 0 }, wantErr: true},
		{name: "negative delay", mutate: func(c *Config) { c.Client.FeedDelay = -time.Second }, wantErr: true},
		{name: "no base url", mutate: func(c *Config) { c.Upstream.BaseURL = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	t.Setenv("MAX_FEED_ATTEMPTS", "not-a-number")

	cfg := LoadOrDefault()
	assert.Equal(t, 10, cfg.Client.MaxFeedAttempts)
}
