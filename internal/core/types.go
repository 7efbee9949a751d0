package core

import (
	"context"
)

// IDLength is the fixed length of every short identifier.
const IDLength = 7

// CreatorMetadata is the provenance of a record. Written once on create.
type CreatorMetadata struct {
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent,omitempty"`
}

// Record is a stored short link.
type Record struct {
	ID           string          `json:"url_id"`
	TargetURL    string          `json:"url"`
	CreatedAt    int64           `json:"created_at"` // unix seconds
	ExpiresAfter int64           `json:"expires_at"` // seconds; 0 = never
	Redirects    int64           `json:"number_of_redirects"`
	Creator      CreatorMetadata `json:"created_by_user_metadata"`
}

// Stats is the public projection of a record exposed by the stats endpoints.
type Stats struct {
	ID           string `json:"url_id"`
	Redirects    int64  `json:"number_of_redirects"`
	CreatedAt    int64  `json:"created_at"`
	ExpiresAfter int64  `json:"expires_at"`
}

// Stats returns the public fields of r.
func (r *Record) Stats() Stats {
	return Stats{
		ID:           r.ID,
		Redirects:    r.Redirects,
		CreatedAt:    r.CreatedAt,
		ExpiresAfter: r.ExpiresAfter,
	}
}

// ShortenRequest is the input to create a short link. Values arrive as raw
// query strings; the service validates them.
type ShortenRequest struct {
	URL             string
	SecondsToExpire string
	Token           string
	IP              string
	UserAgent       string
}

// Store abstracts persistence for short link records.
type Store interface {
	// Insert stores a new record. Must fail with ErrConflict if the id is taken.
	Insert(ctx context.Context, r *Record) error
	// Exists reports whether a record with id is stored.
	Exists(ctx context.Context, id string) (bool, error)
	// FindByID returns the record for id (expired ones included) or ErrNotFound.
	FindByID(ctx context.Context, id string) (*Record, error)
	// IncrementRedirects atomically adds one to the redirect counter of id.
	IncrementRedirects(ctx context.Context, id string) error
	// List returns every stored record in no particular order.
	List(ctx context.Context) ([]Record, error)
	// Ping is a lightweight liveness probe.
	Ping(ctx context.Context) error
	Close() error
}

// IDGenerator creates random short identifier candidates.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Scope is the privilege a credential is checked against.
type Scope int

const (
	ScopeCreate Scope = iota
	ScopeStats
)

// Authorizer validates a presented credential for a scope and returns
// ErrUnauthorized on mismatch.
type Authorizer interface {
	Authorize(scope Scope, token string) error
}
