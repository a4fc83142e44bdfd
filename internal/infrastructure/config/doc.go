// Package config provides 12-factor configuration for the bot server and CLI.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, shutdown timeout)
//   - Upstream: remote site base URL, timeouts, retries, pacing, site profile
//   - Client: proxy server URL, feed delay and attempt cap
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting of the local API
//   - Security: CSRF and session cookie names, allowed CORS origins
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Proxying %s on %s:%s\n", cfg.Upstream.BaseURL, cfg.Server.Host, cfg.Server.Port)
package config
