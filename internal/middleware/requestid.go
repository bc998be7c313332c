package middleware

import (
	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Request identifiers
)

// RequestIDKey is the context key holding the request identifier.
const RequestIDKey = "requestID"

// RequestID tags every request with an identifier for log correlation. An
// incoming X-Request-ID header is honored so upstream proxies can thread
// their own ids through.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID") // Reuse the caller's id if present
		if id == "" {
			id = uuid.NewString() // Otherwise mint one
		}
		c.Set(RequestIDKey, id)                  // Expose to handlers
		c.Writer.Header().Set("X-Request-ID", id) // Echo back to the caller
		c.Next()                                 // Proceed to the next handler
	}
}
