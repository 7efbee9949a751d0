package id

import (
	"context"
	"strings"

	"github.com/Om-Mishra7/URL-Shortner/internal/core"
)

// Generator implements core.IDGenerator with lowercased base64url tokens.
type Generator struct {
	bytes int
}

// NewGenerator creates an id generator that yields core.IDLength characters.
func NewGenerator() *Generator {
	return &Generator{bytes: tokenBytes}
}

// NewID returns a fresh lowercase candidate. Uniqueness is the caller's job.
func (g *Generator) NewID(_ context.Context) (string, error) {
	tok, err := RandomToken(g.bytes)
	if err != nil {
		return "", err
	}
	return strings.ToLower(tok), nil
}

// Ensure *Generator satisfies the interface at compile-time.
var _ core.IDGenerator = (*Generator)(nil)
