package middleware

import (
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Om-Mishra7/URL-Shortner/internal/logger"
)

// RequestLogger logs every request with timing.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		rawQuery := redactQuery(c.Request.URL.Query())

		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		if status >= 400 {
			event = logger.Warn()
		}
		if status >= 500 {
			event = logger.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", rawQuery).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Str("request_id", GetRequestID(c)).
			Int("body_size", c.Writer.Size()).
			Msg("request")
	}
}

// redactQuery keeps the shared secret out of the logs.
func redactQuery(q url.Values) string {
	if q.Has("authorization_token") {
		q.Set("authorization_token", "REDACTED")
	}
	return q.Encode()
}
