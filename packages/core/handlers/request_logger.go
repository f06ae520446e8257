package handlers

import (
	"time"

	authMiddleware "roster-api/packages/auth/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id, echoed in the response
// headers, and logs one line per completed request. The acting user is
// included when a route resolved one.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		started := time.Now()
		c.Next()

		event := log.Info()
		if c.Writer.Status() >= 500 {
			event = log.Error()
		}
		if actor, ok := authMiddleware.GetActor(c); ok {
			event = event.Str("actor", actor)
		}
		if email, ok := authMiddleware.GetUserEmail(c); ok {
			event = event.Str("email", email)
		}
		event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(started)).
			Msg("request completed")
	}
}
