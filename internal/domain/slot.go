package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Grid bounds. Hours run 09:00 through 24:00 inclusive; day offsets are
// relative to the day the grid is read.
const (
	FirstHour   = 9
	LastHour    = 24
	DaysPerWeek = 7

	HoursPerDay = LastHour - FirstHour + 1
	MaxSlots    = HoursPerDay * DaysPerWeek
)

// ErrInvalidSlot reports a slot key or coordinate outside the weekly grid.
var ErrInvalidSlot = errors.New("invalid slot")

// Slot is one hour-of-day x day-offset cell of the weekly grid.
type Slot struct {
	Hour int
	Day  int
}

// NewSlot validates hour and day and returns the slot.
func NewSlot(hour, day int) (Slot, error) {
	if hour < FirstHour || hour > LastHour {
		return Slot{}, fmt.Errorf("%w: hour %d outside %02d..%02d", ErrInvalidSlot, hour, FirstHour, LastHour)
	}
	if day < 0 || day >= DaysPerWeek {
		return Slot{}, fmt.Errorf("%w: day offset %d outside 0..%d", ErrInvalidSlot, day, DaysPerWeek-1)
	}
	return Slot{Hour: hour, Day: day}, nil
}

// ParseSlot parses the composite key "HH:MM-d", e.g. "09:00-0".
func ParseSlot(key string) (Slot, error) {
	clock, dayStr, ok := strings.Cut(key, "-")
	if !ok {
		return Slot{}, fmt.Errorf("%w: %q is not HH:MM-d", ErrInvalidSlot, key)
	}
	hh, mm, ok := strings.Cut(clock, ":")
	if !ok || mm != "00" {
		return Slot{}, fmt.Errorf("%w: %q is not on the hour", ErrInvalidSlot, key)
	}
	if !isDigits(hh, 2) {
		return Slot{}, fmt.Errorf("%w: hour in %q", ErrInvalidSlot, key)
	}
	if !isDigits(dayStr, 1) {
		return Slot{}, fmt.Errorf("%w: day offset in %q", ErrInvalidSlot, key)
	}
	hour, _ := strconv.Atoi(hh)
	day, _ := strconv.Atoi(dayStr)
	return NewSlot(hour, day)
}

// isDigits reports whether s is exactly n ASCII digits. strconv alone would
// also take a sign.
func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MustParseSlot is ParseSlot for literals known to be valid.
func MustParseSlot(key string) Slot {
	s, err := ParseSlot(key)
	if err != nil {
		panic(err)
	}
	return s
}

// Key returns the "HH:MM-d" encoding.
func (s Slot) Key() string {
	return fmt.Sprintf("%s-%d", s.Clock(), s.Day)
}

// Clock returns the "HH:MM" label of the slot's hour.
func (s Slot) Clock() string {
	return fmt.Sprintf("%02d:00", s.Hour)
}

func (s Slot) String() string { return s.Key() }

// Before orders slots by day offset, then hour.
func (s Slot) Before(o Slot) bool {
	if s.Day != o.Day {
		return s.Day < o.Day
	}
	return s.Hour < o.Hour
}

// AllSlots returns every slot of the grid, day-major.
func AllSlots() []Slot {
	slots := make([]Slot, 0, MaxSlots)
	for day := 0; day < DaysPerWeek; day++ {
		for hour := FirstHour; hour <= LastHour; hour++ {
			slots = append(slots, Slot{Hour: hour, Day: day})
		}
	}
	return slots
}
