package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/storage"
	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/utils"
)

// DefaultTokenTTL is the session lifetime used when the caller passes no TTL.
const DefaultTokenTTL = 4 * time.Hour

// TokenStore maps opaque session tokens to their expiry (epoch seconds),
// file-backed. A token is valid strictly before its expiry, so a zero-TTL
// token is dead on arrival.
type TokenStore struct {
	path string
	mu   sync.Mutex
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

func (t *TokenStore) load() (map[string]int64, error) {
	tokens := map[string]int64{}
	if _, err := storage.LoadJSON(t.path, &tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

// EnsureInitialized creates an empty token file if none exists. Idempotent.
func (t *TokenStore) EnsureInitialized() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	tokens := map[string]int64{}
	found, err := storage.LoadJSON(t.path, &tokens)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return storage.SaveJSON(t.path, tokens)
}

// Issue generates a random URL-safe token expiring after ttl and persists it.
func (t *TokenStore) Issue(ttl time.Duration) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tok, err := utils.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	tokens, err := t.load()
	if err != nil {
		return "", err
	}
	tokens[tok] = time.Now().Add(ttl).Unix()
	if err := storage.SaveJSON(t.path, tokens); err != nil {
		return "", err
	}
	return tok, nil
}

// Validate reports whether the token exists and has not expired. An expired
// token is deleted from the store as a side effect of the check, so a false
// result may write.
func (t *TokenStore) Validate(token string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tokens, err := t.load()
	if err != nil {
		return false, err
	}
	exp, ok := tokens[token]
	if ok && time.Now().Unix() < exp {
		return true, nil
	}
	if ok {
		delete(tokens, token)
		if err := storage.SaveJSON(t.path, tokens); err != nil {
			return false, err
		}
	}
	return false, nil
}

// Revoke removes a token. Revoking an absent token is a no-op.
func (t *TokenStore) Revoke(token string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	tokens, err := t.load()
	if err != nil {
		return err
	}
	if _, ok := tokens[token]; !ok {
		return nil
	}
	delete(tokens, token)
	return storage.SaveJSON(t.path, tokens)
}
