package id

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
)

// tokenBytes of entropy encode to exactly 7 unpadded base64url characters.
const tokenBytes = 5

// RandomToken returns n cryptographically-strong random bytes encoded with the
// unpadded URL-safe base64 alphabet.
func RandomToken(n int) (string, error) {
	if n <= 0 {
		n = tokenBytes
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Alphabet is the set of characters a lowercased token can contain.
func Alphabet() string { return "0123456789abcdefghijklmnopqrstuvwxyz-_" }

// IsURLSafe reports whether every byte of s is in Alphabet.
func IsURLSafe(s string) bool {
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(Alphabet(), rune(s[i])) {
			return false
		}
	}
	return true
}
