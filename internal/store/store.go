package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Om-Mishra7/URL-Shortner/internal/core"
	"github.com/Om-Mishra7/URL-Shortner/internal/store/redis"
	"github.com/Om-Mishra7/URL-Shortner/internal/store/sqlite"
)

// Open returns the record store named by dsn:
//
//	sqlite://./data/urlshorty.db, sqlite://:memory:, or a bare file path
//	redis://[:password@]host:port/db, rediss://...
func Open(ctx context.Context, dsn string) (core.Store, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return nil, fmt.Errorf("store url is empty")
	case strings.HasPrefix(dsn, "redis://"), strings.HasPrefix(dsn, "rediss://"):
		s, err := redis.Open(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("open redis: %w", err)
		}
		return s, nil
	case strings.Contains(dsn, "://") && !strings.HasPrefix(dsn, "sqlite://"):
		return nil, fmt.Errorf("unsupported store url scheme in %q", dsn)
	default:
		s, err := sqlite.Open(ctx, strings.TrimPrefix(dsn, "sqlite://"))
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return s, nil
	}
}
