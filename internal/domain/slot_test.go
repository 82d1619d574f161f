package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlot_RoundTripsEveryCell(t *testing.T) {
	all := AllSlots()
	require.Len(t, all, MaxSlots)
	assert.Equal(t, 112, MaxSlots)

	for _, s := range all {
		parsed, err := ParseSlot(s.Key())
		require.NoError(t, err, s.Key())
		assert.Equal(t, s, parsed)
	}
}

func TestParseSlot_Boundaries(t *testing.T) {
	s, err := ParseSlot("09:00-0")
	require.NoError(t, err)
	assert.Equal(t, Slot{Hour: 9, Day: 0}, s)

	s, err = ParseSlot("24:00-6")
	require.NoError(t, err)
	assert.Equal(t, Slot{Hour: 24, Day: 6}, s)
}

func TestParseSlot_RejectsInvalid(t *testing.T) {
	tests := []string{
		"",
		"09:00",
		"08:00-0",
		"25:00-0",
		"09:30-0",
		"9:00-0",
		"09:00-7",
		"09:00--1",
		"09:00-x",
		"09:00-01",
		"ab:00-0",
		"+9:00-0",
		"-9:00-0",
		" 9:00-0",
		"09:00-+",
	}
	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := ParseSlot(key)
			assert.ErrorIs(t, err, ErrInvalidSlot)
		})
	}
}

func TestSlot_BeforeOrdersDayThenHour(t *testing.T) {
	assert.True(t, MustParseSlot("23:00-0").Before(MustParseSlot("09:00-1")))
	assert.True(t, MustParseSlot("09:00-2").Before(MustParseSlot("10:00-2")))
	assert.False(t, MustParseSlot("10:00-2").Before(MustParseSlot("10:00-2")))
}
