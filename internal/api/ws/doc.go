// Package ws streams auto runs to browsers over a WebSocket.
//
// Message Types (Client → Server):
//   - auto: run login, feed, learn, guess, logout with {username, password}
//   - ping: keep-alive ping
//
// Message Types (Server → Client):
//   - system: connection established
//   - step: one finished step of the running auto run
//   - report: the final report of an auto run
//   - pong: reply to ping
//   - error: request rejected
//
// Example Usage:
//
//	handler := ws.NewHandler(bots, metrics, logger)
//	router.GET("/api/auto/stream", handler.AutoStream)
package ws
