package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
)

// ScheduleView is what the schedule screen shows.
type ScheduleView struct {
	ProjectName string
	Today       time.Time
	Votes       domain.VoteMap
	Members     int
	Stale       int
	Proposal    *domain.Proposal
	Offline     bool
}

// FormatSchedule renders the heat map and the meeting proposal.
func FormatSchedule(v ScheduleView) string {
	var b strings.Builder

	var highlight *domain.Slot
	if v.Proposal != nil && !v.Proposal.Explicit {
		highlight = &v.Proposal.Slot
	}
	b.WriteString(RenderHeatMap(v.Votes, v.Today, highlight))
	b.WriteString("\n")
	b.WriteString(FormatProposal(v.Proposal, v.Members))

	if v.Stale > 0 {
		b.WriteString("\n" + StyleYellow.Render(fmt.Sprintf(
			"%d of %d schedules were saved on an earlier day; their days have shifted.", v.Stale, v.Members)))
	}
	if v.Offline {
		b.WriteString("\n" + Dim("Backend unreachable: showing local data only."))
	}

	title := "Team schedule"
	if v.ProjectName != "" {
		title += " · " + v.ProjectName
	}
	return RenderBox(title, b.String())
}

// FormatProposal renders the suggested meeting line.
func FormatProposal(p *domain.Proposal, members int) string {
	switch {
	case p == nil:
		return Dim("No meeting proposal yet: nobody has shared availability.")
	case p.Explicit:
		return fmt.Sprintf("%s %s %s", StyleDim.Render("NEXT MEETING"), StyleBlue.Render(p.Text), Dim("(set on project)"))
	default:
		return fmt.Sprintf("%s %s  %s", StyleDim.Render("PROPOSED"), StyleGreen.Render(p.Text),
			RenderAgreement(p.Votes, members, 10))
	}
}
