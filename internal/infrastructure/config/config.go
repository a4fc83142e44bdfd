package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Upstream  UpstreamConfig
	Client    ClientConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Security  SecurityConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// UpstreamConfig holds settings for calls to the remote site.
type UpstreamConfig struct {
	BaseURL     string        `envconfig:"TEVECLUB_BASE_URL" default:"https://teveclub.hu"`
	Timeout     time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"30s"`
	Retries     int           `envconfig:"UPSTREAM_RETRIES" default:"2"`
	RPS         float64       `envconfig:"UPSTREAM_RPS" default:"4"`
	Burst       int           `envconfig:"UPSTREAM_BURST" default:"4"`
	SessionIdle time.Duration `envconfig:"SESSION_IDLE" default:"30m"`
	ProfilePath string        `envconfig:"PROFILE_PATH"`
}

// ClientConfig holds settings for the action client and orchestrator.
type ClientConfig struct {
	ServerURL       string        `envconfig:"SERVER_URL"`
	FeedDelay       time.Duration `envconfig:"FEED_DELAY" default:"500ms"`
	MaxFeedAttempts int           `envconfig:"MAX_FEED_ATTEMPTS" default:"10"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds per-IP rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"40"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// SecurityConfig holds cookie, CSRF and CORS settings.
type SecurityConfig struct {
	CSRFCookie     string   `envconfig:"CSRF_COOKIE" default:"csrftoken"`
	CSRFHeader     string   `envconfig:"CSRF_HEADER" default:"X-CSRFToken"`
	SessionCookie  string   `envconfig:"SESSION_COOKIE" default:"sessionid"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate checks values envconfig cannot express.
func (c *Config) Validate() error {
	if c.Client.MaxFeedAttempts < 1 || c.Client.MaxFeedAttempts > 10 {
		return fmt.Errorf("MAX_FEED_ATTEMPTS must be between 1 and 10, got %d", c.Client.MaxFeedAttempts)
	}
	if c.Client.FeedDelay < 0 {
		return fmt.Errorf("FEED_DELAY cannot be negative")
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("TEVECLUB_BASE_URL is required")
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			ShutdownTimeout: 10 * time.Second,
		},
		Upstream: UpstreamConfig{
			BaseURL:     "https://teveclub.hu",
			Timeout:     30 * time.Second,
			Retries:     2,
			RPS:         4,
			Burst:       4,
			SessionIdle: 30 * time.Minute,
		},
		Client: ClientConfig{
			FeedDelay:       500 * time.Millisecond,
			MaxFeedAttempts: 10,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
			Enabled:           true,
		},
		Security: SecurityConfig{
			CSRFCookie:     "csrftoken",
			CSRFHeader:     "X-CSRFToken",
			SessionCookie:  "sessionid",
			AllowedOrigins: []string{"*"},
		},
	}
}
