package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/Om-Mishra7/URL-Shortner/internal/core"
	"github.com/Om-Mishra7/URL-Shortner/internal/logger"
)

// Recover turns a panic into core.ErrInternal for Errors to render.
func Recover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Str("panic", fmt.Sprintf("%v", r)).
					Str("stack", string(debug.Stack())).
					Str("request_id", GetRequestID(c)).
					Msg("Panic recovered")
				_ = c.Error(fmt.Errorf("%w: panic: %v", core.ErrInternal, r))
				c.Abort()
			}
		}()
		c.Next()
	}
}
