package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const saltBytes = 16

// DerivePassword runs PBKDF2-SHA256 over the password with the given salt and
// iteration count and returns the derived key hex encoded.
func DerivePassword(password string, salt []byte, iterations int) string {
	key := pbkdf2.Key([]byte(password), salt, iterations, sha256.Size, sha256.New)
	return hex.EncodeToString(key)
}

// NewSalt generates a fresh random salt.
func NewSalt() ([]byte, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// ConstantTimeEquals compares two hex digests without leaking where they
// differ.
func ConstantTimeEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
