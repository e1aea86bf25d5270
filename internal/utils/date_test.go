package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/models"
)

func TestEnsureDate(t *testing.T) {
	for _, valid := range []string{"2024-01-01", "1999-12-31", "2024-02-29"} {
		assert.NoError(t, EnsureDate(valid), valid)
	}
	for _, invalid := range []string{"", "2024-13-01", "2024-02-30", "01/02/2024", "2024-1-1", "yesterday"} {
		err := EnsureDate(invalid)
		assert.ErrorIs(t, err, models.ErrValidation, invalid)
	}
}

func TestParseDateOrdering(t *testing.T) {
	early, err := ParseDate("2024-01-10")
	require.NoError(t, err)
	late, err := ParseDate("2024-02-10")
	require.NoError(t, err)
	assert.True(t, early.Before(late))
}

func TestToday(t *testing.T) {
	today := Today()
	assert.NoError(t, EnsureDate(today))
	assert.Equal(t, time.Now().Format(DateFormat), today)
}
