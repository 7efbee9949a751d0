package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Om-Mishra7/URL-Shortner/internal/core"
	"github.com/Om-Mishra7/URL-Shortner/internal/rate"
)

// RateLimit enforces a simple per-IP token bucket for the current route.
func RateLimit(lim *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !lim.Allow(c.ClientIP()) {
			_ = c.Error(core.ErrRateLimited)
			c.Abort()
			return
		}
		c.Next()
	}
}
