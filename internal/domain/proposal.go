package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// VoteMap counts, per slot, how many members selected it.
type VoteMap map[Slot]int

// Max returns the highest count in the map.
func (v VoteMap) Max() int {
	m := 0
	for _, n := range v {
		if n > m {
			m = n
		}
	}
	return m
}

// Proposal is a suggested meeting time for a project.
type Proposal struct {
	Slot     Slot
	Votes    int
	Date     time.Time // midnight of the resolved day
	Explicit bool      // set on the project, not derived from votes
	Text     string    // "YYYY-MM-DD HH:MM"
}

func (p Proposal) String() string { return p.Text }

// ResolveSlotDate turns a slot's relative day offset into a calendar proposal
// from today. Hour 24 stays "24:00" on the slot's own date.
func ResolveSlotDate(s Slot, votes int, today time.Time) Proposal {
	y, m, d := today.Date()
	date := time.Date(y, m, d+s.Day, 0, 0, 0, 0, today.Location())
	return Proposal{
		Slot:  s,
		Votes: votes,
		Date:  date,
		Text:  date.Format("2006-01-02") + " " + s.Clock(),
	}
}

// ValidateMeetingTime checks an explicit "YYYY-MM-DD HH:MM" meeting time.
// Hours 00 through 24 are accepted to match slot labels.
func ValidateMeetingTime(s string) error {
	datePart, clock, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return fmt.Errorf("meeting time %q: use YYYY-MM-DD HH:MM", s)
	}
	if _, err := time.Parse("2006-01-02", datePart); err != nil {
		return fmt.Errorf("meeting time %q: use YYYY-MM-DD HH:MM", s)
	}
	hh, mm, ok := strings.Cut(clock, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return fmt.Errorf("meeting time %q: use YYYY-MM-DD HH:MM", s)
	}
	h, errH := strconv.Atoi(hh)
	m, errM := strconv.Atoi(mm)
	if errH != nil || errM != nil || h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return fmt.Errorf("meeting time %q: invalid clock", s)
	}
	return nil
}
