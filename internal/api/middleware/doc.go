// Package middleware provides the gin middleware of the API server.
//
// Order on the engine:
//  1. RequestLog: request ID and zap access log
//  2. CORS
//  3. RateLimit: per client IP token bucket
//  4. Session: browser session cookie (upstream cookie jar key)
//  5. CSRF: double-submit token on unsafe methods
package middleware
