// Package server assembles the HTTP server: middleware chain, session pool,
// shared upstream circuit breaker, routes and metrics.
//
// Example Usage:
//
//	srv, err := server.NewServer(cfg, logger)
//	go srv.Run()
//	defer srv.Close()
package server
