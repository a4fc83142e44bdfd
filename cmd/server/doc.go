// Package main is the entry point for the teveclub bot server.
//
// The server hosts the local API the bot client talks to:
//
//	Browser / CLI → Go server → teveclub.hu
//
// The server provides:
//   - Proxy endpoint forwarding requests with per-session remote cookies
//   - Status endpoints for the pet's food, drink and current trick
//   - Bot API (login, feed, learn, guess, food, drink, logout, auto)
//   - WebSocket streaming of auto runs
//   - Prometheus metrics, rate limiting and CSRF protection
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
