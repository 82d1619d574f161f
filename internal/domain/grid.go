package domain

import (
	"sort"
	"time"
)

// Grid is one member's availability selection for one project.
type Grid struct {
	ProjectID   string
	UserID      string
	CommittedAt time.Time // zero until loaded from a commit

	slots map[Slot]struct{}
}

// NewGrid returns an empty grid owned by (projectID, userID).
func NewGrid(projectID, userID string) *Grid {
	return &Grid{ProjectID: projectID, UserID: userID, slots: make(map[Slot]struct{})}
}

// GridFromKeys rebuilds a grid from encoded slot keys. Any invalid key fails
// the whole grid.
func GridFromKeys(projectID, userID string, keys []string) (*Grid, error) {
	g := NewGrid(projectID, userID)
	for _, k := range keys {
		s, err := ParseSlot(k)
		if err != nil {
			return nil, err
		}
		g.slots[s] = struct{}{}
	}
	return g, nil
}

// Toggle flips the slot and reports whether it is now selected.
func (g *Grid) Toggle(s Slot) bool {
	if _, ok := g.slots[s]; ok {
		delete(g.slots, s)
		return false
	}
	g.slots[s] = struct{}{}
	return true
}

// ToggleKey parses key and toggles it.
func (g *Grid) ToggleKey(key string) (bool, error) {
	s, err := ParseSlot(key)
	if err != nil {
		return false, err
	}
	return g.Toggle(s), nil
}

func (g *Grid) Has(s Slot) bool {
	_, ok := g.slots[s]
	return ok
}

func (g *Grid) Len() int { return len(g.slots) }

// Slots returns the selection ordered by day, then hour.
func (g *Grid) Slots() []Slot {
	out := make([]Slot, 0, len(g.slots))
	for s := range g.slots {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Keys returns the encoded selection in Slots order.
func (g *Grid) Keys() []string {
	slots := g.Slots()
	keys := make([]string, len(slots))
	for i, s := range slots {
		keys[i] = s.Key()
	}
	return keys
}

// StaleDays reports how many days have passed since the grid was committed.
// Day offsets shift by that amount when read today.
func (g *Grid) StaleDays(today time.Time) int {
	if g.CommittedAt.IsZero() {
		return 0
	}
	return DaysBetween(g.CommittedAt, today)
}

// DaysBetween counts calendar days from a to b in b's location.
func DaysBetween(a, b time.Time) int {
	a = a.In(b.Location())
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
