package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Om-Mishra7/URL-Shortner/internal/auth"
	"github.com/Om-Mishra7/URL-Shortner/internal/config"
	"github.com/Om-Mishra7/URL-Shortner/internal/core"
	httpapi "github.com/Om-Mishra7/URL-Shortner/internal/http"
	"github.com/Om-Mishra7/URL-Shortner/internal/id"
	"github.com/Om-Mishra7/URL-Shortner/internal/logger"
	"github.com/Om-Mishra7/URL-Shortner/internal/rate"
	"github.com/Om-Mishra7/URL-Shortner/internal/store"
)

// App wires config, storage, core service, rate limiter, and the HTTP router.
type App struct {
	Cfg     config.Config
	Store   core.Store
	Service *core.Service
	Limiter *rate.Limiter
	Router  *gin.Engine

	stopSweep chan struct{}
}

// New builds a fully-wired application instance. The store is opened here and
// released by Close.
func New(ctx context.Context, cfg config.Config, opts ...core.Option) (*App, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	st, err := store.Open(ctx, cfg.StoreURL)
	if err != nil {
		return nil, err
	}

	svc := core.NewService(st, id.NewGenerator(), auth.NewTokens(cfg.AuthToken, cfg.StatsToken), opts...)

	a := &App{
		Cfg:       cfg,
		Store:     st,
		Service:   svc,
		stopSweep: make(chan struct{}),
	}

	// In-memory rate limiter for /api/v1/shorten
	if cfg.RateLimitRPS > 0 {
		a.Limiter = rate.NewLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go a.Limiter.CleanupLoop(time.Minute, a.stopSweep)
	}
	if cfg.AuthToken == "" {
		logger.Warn().Msg("AUTHORIZATION_TOKEN is not set; every authenticated request will be rejected")
	}

	a.Router = httpapi.NewRouter(svc, httpapi.Options{
		BaseURL:     cfg.BaseURL,
		RateLimiter: a.Limiter,
	})
	return a, nil
}

// Addr returns the HTTP listen address, e.g. ":8080".
func (a *App) Addr() string {
	return fmt.Sprintf(":%d", a.Cfg.Port)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully within
// Cfg.ShutdownTimeout.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Addr(),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the store and background workers.
func (a *App) Close() error {
	select {
	case <-a.stopSweep:
	default:
		close(a.stopSweep)
	}
	return a.Store.Close()
}
