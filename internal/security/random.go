package security

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
)

// NewRandomString returns n random bytes, base64url encoded.
func NewRandomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// NewSetupToken returns 32 random bytes, hex encoded.
func NewSetupToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
