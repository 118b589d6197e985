package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID carries the request correlation ID. Incoming values are
// honored so the routing layer's IDs survive into our logs.
const HeaderRequestID = "X-Request-ID"

// RequestID assigns every request a correlation ID and echoes it back on the
// response.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(HeaderRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}

// AccessLog logs one line per request after the handler chain completes.
func (m Middleware) AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		m.l.Infof(c.Request.Context(), "%s %s -> %d (%s) request_id=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
			c.GetString(HeaderRequestID),
		)
	}
}
