package models

import "errors"

// Base error kinds. Operations wrap these with context so callers can match
// with errors.Is and translate them to transport responses.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("already exists")
	ErrNotFound   = errors.New("not found")
	ErrAuth       = errors.New("authentication failed")
)
