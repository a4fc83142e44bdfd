// Package proxy implements the remote action transport over a running
// teveclub server: remote calls go to POST /api/proxy/ and status reads to
// GET /api/current-food-drink/ and /api/current-trick/.
//
// The anti-forgery token is read once, at construction, from the server's
// csrftoken cookie or its hidden csrfmiddlewaretoken input, and sent as
// X-CSRFToken on every call.
//
// Every failure is folded into the response value:
//   - "Network error: ..." when the server cannot be reached
//   - "Server error: Response is not JSON..." when the body is not JSON
//   - the server's own message when it answers success=false
package proxy
