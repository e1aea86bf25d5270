package auth

import (
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/models"
	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/storage"
	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/utils"
)

// DefaultIterations is the PBKDF2 iteration count for newly derived hashes.
// Stored per record, so raising it only affects credentials created after.
const DefaultIterations = 120000

// CredentialStore holds the single admin credential, file-backed. The
// defaults are only used to bootstrap a missing credential file and are meant
// to be rotated immediately via ChangePassword.
type CredentialStore struct {
	path            string
	defaultUsername string
	defaultPassword string
	iterations      int
	mu              sync.Mutex
}

func NewCredentialStore(path, defaultUsername, defaultPassword string, iterations int) *CredentialStore {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &CredentialStore{
		path:            path,
		defaultUsername: defaultUsername,
		defaultPassword: defaultPassword,
		iterations:      iterations,
	}
}

func (c *CredentialStore) newRecord(username, password string) (models.AdminRecord, error) {
	salt, err := utils.NewSalt()
	if err != nil {
		return models.AdminRecord{}, fmt.Errorf("generate salt: %w", err)
	}
	return models.AdminRecord{
		Username:     username,
		Scheme:       models.PasswordScheme,
		Iterations:   c.iterations,
		Salt:         hex.EncodeToString(salt),
		PasswordHash: utils.DerivePassword(password, salt, c.iterations),
	}, nil
}

// EnsureInitialized creates the credential file with the default admin if it
// does not exist yet. Idempotent.
func (c *CredentialStore) EnsureInitialized() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var rec models.AdminRecord
	found, err := storage.LoadJSON(c.path, &rec)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	rec, err = c.newRecord(c.defaultUsername, c.defaultPassword)
	if err != nil {
		return err
	}
	return storage.SaveJSON(c.path, rec)
}

func (c *CredentialStore) read() (models.AdminRecord, error) {
	var rec models.AdminRecord
	found, err := storage.LoadJSON(c.path, &rec)
	if err != nil {
		return models.AdminRecord{}, err
	}
	if !found {
		return models.AdminRecord{}, fmt.Errorf("%w: credential store not initialized", models.ErrAuth)
	}
	return rec, nil
}

// VerifyPassword re-derives the hash with the stored salt and iteration count
// and compares in constant time.
func (c *CredentialStore) VerifyPassword(password string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verifyPasswordLocked(password)
}

func (c *CredentialStore) verifyPasswordLocked(password string) (bool, error) {
	rec, err := c.read()
	if err != nil {
		return false, err
	}
	salt, err := hex.DecodeString(rec.Salt)
	if err != nil {
		return false, fmt.Errorf("decode salt: %w", err)
	}
	given := utils.DerivePassword(password, salt, rec.Iterations)
	return utils.ConstantTimeEquals(rec.PasswordHash, given), nil
}

// VerifyUser checks the username exactly and the password in constant time.
func (c *CredentialStore) VerifyUser(username, password string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, err := c.read()
	if err != nil {
		return false, err
	}
	ok, err := c.verifyPasswordLocked(password)
	if err != nil {
		return false, err
	}
	return username == rec.Username && ok, nil
}

// ChangePassword replaces the credential record wholesale with a fresh salt
// and hash for the new password.
func (c *CredentialStore) ChangePassword(oldPassword, newPassword string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ok, err := c.verifyPasswordLocked(oldPassword)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: current password is incorrect", models.ErrAuth)
	}
	rec, err := c.read()
	if err != nil {
		return err
	}
	next, err := c.newRecord(rec.Username, newPassword)
	if err != nil {
		return err
	}
	return storage.SaveJSON(c.path, next)
}
