package models

// PasswordScheme tags the derivation used for the stored admin hash.
const PasswordScheme = "pbkdf2_sha256"

// AdminRecord is the single persisted admin credential. The record is
// replaced wholesale on password change; salt and hash are hex encoded.
type AdminRecord struct {
	Username     string `json:"username"`
	Scheme       string `json:"pwd_scheme"`
	Iterations   int    `json:"iterations"`
	Salt         string `json:"salt"`
	PasswordHash string `json:"pwd_hash"`
}
