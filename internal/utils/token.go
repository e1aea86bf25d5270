package utils

import (
	"crypto/rand"
	"encoding/base64"
)

const tokenBytes = 32

// GenerateToken returns a cryptographically random URL-safe session token.
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
