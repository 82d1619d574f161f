package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_ToggleIsIdempotentFlip(t *testing.T) {
	g := NewGrid("p1", "u1")
	s := MustParseSlot("10:00-3")

	assert.True(t, g.Toggle(s))
	assert.True(t, g.Has(s))
	assert.False(t, g.Toggle(s))
	assert.False(t, g.Has(s))
	assert.Equal(t, 0, g.Len())
}

func TestGrid_ToggleKeyRejectsInvalid(t *testing.T) {
	g := NewGrid("p1", "u1")

	_, err := g.ToggleKey("07:00-0")
	assert.ErrorIs(t, err, ErrInvalidSlot)
	assert.Equal(t, 0, g.Len())
}

func TestGrid_KeysAreOrdered(t *testing.T) {
	g, err := GridFromKeys("p1", "u1", []string{"12:00-1", "09:00-1", "24:00-0"})
	require.NoError(t, err)

	assert.Equal(t, []string{"24:00-0", "09:00-1", "12:00-1"}, g.Keys())
}

func TestGridFromKeys_InvalidKeyFails(t *testing.T) {
	_, err := GridFromKeys("p1", "u1", []string{"09:00-0", "bogus"})
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestGrid_StaleDays(t *testing.T) {
	g := NewGrid("p1", "u1")
	today := time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)
	assert.Equal(t, 0, g.StaleDays(today))

	g.CommittedAt = time.Date(2026, 3, 8, 23, 59, 0, 0, time.Local)
	assert.Equal(t, 2, g.StaleDays(today))
}
