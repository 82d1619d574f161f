package formatter

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
)

// FormatProjectList renders projects in a bordered table. Projects userID
// belongs to are starred.
func FormatProjectList(projects []*domain.Project, userID string, now time.Time) string {
	headers := []string{"", "ID", "NAME", "MEMBERS", "NEXT MEETING", "DEADLINE"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		mine := ""
		if slices.Contains(p.Members, userID) {
			mine = StyleYellow.Render("★")
		}
		meeting := Dim("--")
		if p.NextMeeting != "" {
			meeting = StyleBlue.Render(p.NextMeeting)
		}
		deadline := Dim("--")
		if p.Deadline != nil {
			deadline = DeadlineStyled(*p.Deadline, now)
		}
		rows = append(rows, []string{
			mine,
			Dim(p.DisplayID()),
			Bold(p.Name),
			fmt.Sprintf("%d", len(p.Members)),
			meeting,
			deadline,
		})
	}

	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProject renders one project's details.
func FormatProject(p *domain.Project, now time.Time) string {
	var b strings.Builder
	field := func(label, value string) {
		fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render(fmt.Sprintf("%-8s", label)), value)
	}

	b.WriteString(StyleBold.Render(p.Name) + "\n\n")
	field("ID", p.ID)
	if p.Code != "" {
		field("CODE", p.Code)
	}
	if p.Goal != "" {
		field("GOAL", StyleFg.Render(p.Goal))
	}
	if p.Deadline != nil {
		field("DEADLINE", p.Deadline.Format(domain.DateLayout)+" "+DeadlineStyled(*p.Deadline, now))
	}
	if p.NextMeeting != "" {
		field("MEETING", StyleBlue.Render(p.NextMeeting))
	}
	field("MEMBERS", fmt.Sprintf("%d", len(p.Members)))

	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}
