package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const csrfTokenKey = "csrf_token"

// Cookie and header names the browser client uses by default
const (
	DefaultCSRFCookie = "csrftoken"
	DefaultCSRFHeader = "X-CSRFToken"
)

// CSRFConfig names the anti-forgery cookie and header.
type CSRFConfig struct {
	CookieName string
	HeaderName string
	Secure     bool
}

// DefaultCSRFConfig returns the names the browser client expects.
func DefaultCSRFConfig() CSRFConfig {
	return CSRFConfig{
		CookieName: DefaultCSRFCookie,
		HeaderName: DefaultCSRFHeader,
	}
}

// CSRF issues a token cookie when missing and, on unsafe methods, requires
// the header to repeat the cookie value (double submit).
func CSRF(cfg CSRFConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(cfg.CookieName)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			if cookie == "" {
				cookie = uuid.NewString()
				// readable by scripts: the browser client copies it into the header
				c.SetSameSite(http.SameSiteLaxMode)
				c.SetCookie(cfg.CookieName, cookie, 365*24*3600, "/", "", cfg.Secure, false)
			}
			c.Set(csrfTokenKey, cookie)
			c.Next()
			return
		}

		header := c.GetHeader(cfg.HeaderName)
		if cookie == "" || header == "" || subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "CSRF verification failed",
			})
			return
		}

		c.Set(csrfTokenKey, cookie)
		c.Next()
	}
}

// CSRFToken returns the token for the current request, if any.
func CSRFToken(c *gin.Context) string {
	return c.GetString(csrfTokenKey)
}
