package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeatColor(t *testing.T) {
	assert.Equal(t, ColorBg, HeatColor(0))
	assert.Equal(t, ColorBg, HeatColor(-2))
	assert.NotEqual(t, HeatColor(1), HeatColor(2))

	// Weight saturates at five votes and the tint bottoms out at seven.
	assert.Equal(t, HeatColor(7), HeatColor(100))
}

func TestDayLabel(t *testing.T) {
	today := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC) // Sunday
	assert.Equal(t, "Sun 18", DayLabel(today, 0))
	assert.Equal(t, "Sat 24", DayLabel(today, 6))
	assert.Equal(t, "Mon  2", DayLabel(time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), 1))
}

func TestRenderHeatMap(t *testing.T) {
	today := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	votes := domain.VoteMap{
		domain.MustParseSlot("09:00-0"): 3,
		domain.MustParseSlot("10:00-0"): 1,
	}
	best := domain.MustParseSlot("09:00-0")

	out := RenderHeatMap(votes, today, &best)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 1+domain.HoursPerDay)
	assert.Contains(t, lines[0], "Sun 18")
	assert.Contains(t, lines[0], "Sat 24")
	assert.True(t, strings.HasPrefix(lines[1], "09:00"))
	assert.Contains(t, lines[1], "[3]")
	assert.True(t, strings.HasPrefix(lines[2], "10:00"))
	assert.Contains(t, lines[2], "1")
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "24:00"))
}

func TestRenderPersonalGrid(t *testing.T) {
	today := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	g := domain.NewGrid("p1", "u1")
	g.Toggle(domain.MustParseSlot("12:00-3"))

	out := RenderPersonalGrid(g, today)
	assert.Equal(t, 1, strings.Count(out, "■"))
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "12:00") {
			assert.Contains(t, line, "■")
		}
	}
}

func TestRenderAgreement(t *testing.T) {
	assert.Contains(t, RenderAgreement(3, 4, 8), "3/4")
	assert.Contains(t, RenderAgreement(3, 4, 8), "██████░░")
	assert.Contains(t, RenderAgreement(9, 4, 4), "4/4")
	assert.Contains(t, RenderAgreement(0, 0, 4), "no members")
}

func TestFormatProposal(t *testing.T) {
	assert.Contains(t, FormatProposal(nil, 0), "No meeting proposal")

	derived := &domain.Proposal{Slot: domain.MustParseSlot("09:00-0"), Votes: 3, Text: "2026-10-18 09:00"}
	out := FormatProposal(derived, 4)
	assert.Contains(t, out, "PROPOSED")
	assert.Contains(t, out, "2026-10-18 09:00")
	assert.Contains(t, out, "3/4")

	explicit := &domain.Proposal{Explicit: true, Text: "2026-10-21 14:00"}
	assert.Contains(t, FormatProposal(explicit, 4), "set on project")
}

func TestFormatSchedule_Notes(t *testing.T) {
	out := FormatSchedule(ScheduleView{
		ProjectName: "Capstone",
		Today:       time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		Votes:       domain.VoteMap{},
		Members:     2,
		Stale:       1,
		Offline:     true,
	})
	assert.Contains(t, out, "TEAM SCHEDULE · CAPSTONE")
	assert.Contains(t, out, "1 of 2 schedules")
	assert.Contains(t, out, "local data only")
}
