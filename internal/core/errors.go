package core

import (
	"errors"
	"fmt"
)

var (
	// Validation.
	ErrInvalidID     = errors.New("invalid url id")
	ErrMissingURL    = errors.New("missing url")
	ErrInvalidExpiry = errors.New("invalid seconds_to_expire")

	ErrUnauthorized = errors.New("invalid authorization token")

	// ErrNotFoundOrExpired is returned by the redirect path for both cases so
	// callers cannot tell them apart.
	ErrNotFoundOrExpired = errors.New("not found or expired")
	ErrNotFound          = errors.New("not found")

	ErrConflict         = errors.New("id already exists")
	ErrRateLimited      = errors.New("rate limited")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInternal         = errors.New("internal error")
)

// IsNotFound reports whether err is a not-found condition.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err indicates a uniqueness conflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// unavailable marks a store fault while keeping the cause in the chain.
func unavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
