package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Om-Mishra7/URL-Shortner/internal/core"
	"github.com/Om-Mishra7/URL-Shortner/internal/http/middleware"
	"github.com/Om-Mishra7/URL-Shortner/internal/logger"
	"github.com/Om-Mishra7/URL-Shortner/internal/rate"
)

type Options struct {
	BaseURL     string
	RateLimiter *rate.Limiter // used for /api/v1/shorten only
}

// NewRouter sets up all routes and middleware.
func NewRouter(svc *core.Service, opts Options) *gin.Engine {
	r := gin.New()
	// Treat all upstreams as untrusted (removes the warning).
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Warn().Err(err).Msg("SetTrustedProxies")
	}

	// Errors must sit inside ProcessTime and RequestLogger so the rendered
	// envelope is timed and logged; Recover inside Errors so panics render.
	r.Use(middleware.RequestID())
	r.Use(middleware.ProcessTime())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Errors())
	r.Use(middleware.Recover())

	h := NewHandlers(svc, opts.BaseURL)

	r.GET("/", h.Root)

	api := r.Group("/api/v1")
	api.GET("/health", h.Health)
	if opts.RateLimiter != nil {
		api.GET("/shorten", middleware.RateLimit(opts.RateLimiter), h.Shorten)
	} else {
		api.GET("/shorten", h.Shorten)
	}
	api.GET("/stats", h.AllStats)
	api.GET("/stats/:id", h.Stats)

	// Redirect
	r.GET("/:id", h.Redirect)

	r.NoRoute(h.NoRoute)
	return r
}
