package auth

import (
	"crypto/subtle"

	"github.com/Om-Mishra7/URL-Shortner/internal/core"
)

// Tokens checks credentials against static shared secrets, one per scope.
type Tokens struct {
	create string
	stats  string
}

// NewTokens builds an authorizer. An empty stats secret falls back to the
// create secret. An empty secret rejects every credential.
func NewTokens(create, stats string) *Tokens {
	if stats == "" {
		stats = create
	}
	return &Tokens{create: create, stats: stats}
}

// Authorize implements core.Authorizer.
func (t *Tokens) Authorize(scope core.Scope, token string) error {
	want := t.create
	if scope == core.ScopeStats {
		want = t.stats
	}
	if want == "" || token == "" {
		return core.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(want), []byte(token)) != 1 {
		return core.ErrUnauthorized
	}
	return nil
}

var _ core.Authorizer = (*Tokens)(nil)
