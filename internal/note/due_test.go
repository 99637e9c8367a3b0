package note

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDue(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)

	at, err := ParseDue("2026-10-21 09:30", loc)
	require.NoError(t, err)
	assert.True(t, at.Equal(time.Date(2026, 10, 21, 9, 30, 0, 0, loc)), "got %v", at)

	at, err = ParseDue("  2026-10-21  ", loc)
	require.NoError(t, err)
	assert.True(t, at.Equal(time.Date(2026, 10, 21, 0, 0, 0, 0, loc)), "got %v", at)

	_, err = ParseDue("   ", loc)
	assert.True(t, errors.Is(err, ErrNoDate))

	_, err = ParseDue("not a date", loc)
	assert.Error(t, err)
}
