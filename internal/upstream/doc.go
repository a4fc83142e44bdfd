// Package upstream talks to teveclub.hu on behalf of browser sessions.
//
// A Client owns one cookie jar, so one Client equals one remote login.
// Requests go through:
//   - a host allowlist (only the configured site and its www. twin)
//   - a token bucket limiter (golang.org/x/time/rate)
//   - a circuit breaker shared by every session
//   - resty over go-retryablehttp, retrying GETs only
//
// Bodies are decoded to UTF-8 whatever charset the site serves.
//
// Clients are pooled per browser session by the shared/pool package.
package upstream
