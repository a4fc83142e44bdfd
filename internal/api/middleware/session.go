package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/teveclub/internal/shared/id"
)

const sessionIDKey = "session_id"

// SessionConfig names the browser session cookie.
type SessionConfig struct {
	CookieName string
	MaxAge     int
	Secure     bool
}

// DefaultSessionConfig returns a two-week session cookie.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		CookieName: "sessionid",
		MaxAge:     14 * 24 * 3600,
	}
}

// Session attaches a browser session ID to every request, issuing a new
// HttpOnly cookie when the client has none or sends a malformed one.
func Session(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := c.Cookie(cfg.CookieName)
		sid, ok := id.ParseSessionID(raw)
		if !ok {
			sid = id.NewSessionID()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, sid.String(), cfg.MaxAge, "/", "", cfg.Secure, true)
		}

		c.Set(sessionIDKey, sid)
		c.Next()
	}
}

// SessionID returns the session ID attached by Session.
func SessionID(c *gin.Context) (id.SessionID, bool) {
	v, ok := c.Get(sessionIDKey)
	if !ok {
		return "", false
	}
	sid, ok := v.(id.SessionID)
	return sid, ok
}
