package core

import "time"

// IsExpired reports whether r is past its relative expiration window at now.
// The window counts from CreatedAt; ExpiresAfter == 0 never expires. The
// comparison is strictly greater-than: a record is still valid at exactly
// ExpiresAfter seconds of age.
func IsExpired(r *Record, now time.Time) bool {
	if r == nil || r.ExpiresAfter == 0 {
		return false
	}
	return now.Unix()-r.CreatedAt > r.ExpiresAfter
}

// CacheMaxAge is the max-age advertised on redirects: the expiration window,
// or 0 for links that never expire.
func CacheMaxAge(r *Record) int64 {
	if r.ExpiresAfter > 0 {
		return r.ExpiresAfter
	}
	return 0
}
