package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Payload size limits (in bytes)
const (
	MaxBodySize    = 1 * 1024 * 1024 // largest request body, a proxied form included
	MaxMessageSize = 16 * 1024       // largest single WebSocket message
)

// BodyLimit rejects request bodies larger than limit bytes. Declared sizes
// are refused up front; undeclared ones fail when the handler reads past it.
func BodyLimit(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = MaxBodySize
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"success": false,
				"message": fmt.Sprintf("request body exceeds %d bytes", limit),
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
