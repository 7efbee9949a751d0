package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Om-Mishra7/URL-Shortner/internal/logger"
)

// Service implements creating, resolving and reporting on short links.
type Service struct {
	store   Store
	gen     IDGenerator
	auth    Authorizer
	nowFunc func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the wall clock used for created_at and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.nowFunc = now }
}

func NewService(store Store, gen IDGenerator, auth Authorizer, opts ...Option) *Service {
	s := &Service{
		store:   store,
		gen:     gen,
		auth:    auth,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Shorten validates in and persists a new record under a fresh identifier.
// Checks run in a fixed order: url present, expiry valid, credential.
func (s *Service) Shorten(ctx context.Context, in ShortenRequest) (*Record, error) {
	target := strings.TrimSpace(in.URL)
	if target == "" {
		return nil, ErrMissingURL
	}
	expiresAfter, err := parseExpiry(in.SecondsToExpire)
	if err != nil {
		return nil, err
	}
	if err := s.auth.Authorize(ScopeCreate, in.Token); err != nil {
		return nil, err
	}

	for {
		id, err := s.GenerateUniqueID(ctx)
		if err != nil {
			return nil, err
		}
		rec := &Record{
			ID:           id,
			TargetURL:    target,
			CreatedAt:    s.nowFunc().Unix(),
			ExpiresAfter: expiresAfter,
			Redirects:    0,
			Creator: CreatorMetadata{
				IP:        in.IP,
				UserAgent: in.UserAgent,
			},
		}
		err = s.store.Insert(ctx, rec)
		if err == nil {
			return rec, nil
		}
		if !IsConflict(err) {
			return nil, unavailable(err)
		}
		// A concurrent creator took the id between probe and insert.
		logger.Debug().Str("url_id", id).Msg("id taken on insert, regenerating")
	}
}

// GenerateUniqueID draws candidates until one is not present in the store.
// There is no retry bound; only ctx cancellation stops the loop.
func (s *Service) GenerateUniqueID(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		id, err := s.gen.NewID(ctx)
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}
		id = strings.ToLower(id)
		if len(id) != IDLength {
			return "", fmt.Errorf("%w: generator returned %q", ErrInternal, id)
		}
		taken, err := s.store.Exists(ctx, id)
		if err != nil {
			return "", unavailable(err)
		}
		if !taken {
			return id, nil
		}
	}
}

// Resolve returns the record behind rawID and counts the redirect. Missing
// and expired records both yield ErrNotFoundOrExpired.
func (s *Service) Resolve(ctx context.Context, rawID string) (*Record, error) {
	if !validID(rawID) {
		return nil, ErrInvalidID
	}
	id := strings.ToLower(rawID)

	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFoundOrExpired
		}
		return nil, unavailable(err)
	}
	if IsExpired(rec, s.nowFunc()) {
		return nil, ErrNotFoundOrExpired
	}

	// Best-effort: a failed increment does not block the redirect.
	if err := s.store.IncrementRedirects(ctx, id); err != nil {
		logger.Warn().Err(err).Str("url_id", id).Msg("increment redirect count")
	} else {
		rec.Redirects++
	}
	return rec, nil
}

// Stats returns the record behind rawID whether or not it is expired.
func (s *Service) Stats(ctx context.Context, token, rawID string) (*Record, error) {
	if err := s.auth.Authorize(ScopeStats, token); err != nil {
		return nil, err
	}
	if !validID(rawID) {
		return nil, ErrInvalidID
	}
	rec, err := s.store.FindByID(ctx, strings.ToLower(rawID))
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, unavailable(err)
	}
	return rec, nil
}

// AllStats lists the public fields of every stored record.
func (s *Service) AllStats(ctx context.Context, token string) ([]Stats, error) {
	if err := s.auth.Authorize(ScopeStats, token); err != nil {
		return nil, err
	}
	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, unavailable(err)
	}
	out := make([]Stats, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].Stats())
	}
	return out, nil
}

// Health probes the store.
func (s *Service) Health(ctx context.Context) error {
	return unavailable(s.store.Ping(ctx))
}

// ---- helpers ----

func validID(id string) bool {
	return utf8.RuneCountInString(id) == IDLength
}

func parseExpiry(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, ErrInvalidExpiry
	}
	return n, nil
}
