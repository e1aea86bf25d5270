package config

import (
	"os"
)

type Config struct {
	Port    string
	DataDir string
	// Bootstrap admin credential, created on first run if no credential
	// file exists. Deliberately weak defaults, rotate via change-password.
	AdminUsername string
	AdminPassword string
	// Token settings
	TokenTTLSeconds string // seconds
	// Password hashing
	PBKDF2Iterations string
}

func Load() *Config {
	return &Config{
		Port:             getenv("PORT", "8080"),
		DataDir:          getenv("DATA_DIR", "data"),
		AdminUsername:    getenv("ADMIN_USERNAME", "admin"),
		AdminPassword:    getenv("ADMIN_PASSWORD", "1234"),
		TokenTTLSeconds:  getenv("TOKEN_TTL_SECONDS", "14400"),
		PBKDF2Iterations: getenv("PBKDF2_ITERATIONS", "120000"),
	}
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
