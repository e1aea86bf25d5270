package utils

import (
	"fmt"
	"time"

	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/models"
)

// DateFormat is the only calendar date format the system accepts.
const DateFormat = "2006-01-02"

// Today returns the current date in the fixed format.
func Today() string {
	return time.Now().Format(DateFormat)
}

// ParseDate parses a date in the fixed format, rejecting anything else.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", models.ErrValidation, s)
	}
	return t, nil
}

// EnsureDate validates a date string without keeping the parsed value.
func EnsureDate(s string) error {
	_, err := ParseDate(s)
	return err
}
