package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequestSizeLimiter caps request bodies at maxBytes. Reads past the cap
// fail inside the handler's bind, which surfaces as a 413.
func RequestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
