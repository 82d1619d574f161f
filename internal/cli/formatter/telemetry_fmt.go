package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
)

// FormatRetryQueue renders queued focus reports, oldest first.
func FormatRetryQueue(entries []domain.RetryEntry, now time.Time) string {
	if len(entries) == 0 {
		return StyleGreen.Render("Retry queue is empty.")
	}
	headers := []string{"QUEUED", "PROJECT", "FOCUS"}
	rows := make([][]string, 0, len(entries))
	var total int64
	for _, e := range entries {
		total += e.Report.FocusSeconds
		rows = append(rows, []string{
			HumanTimestamp(time.UnixMilli(e.EnqueuedAt), now),
			Dim(TruncID(e.Report.ProjectID)),
			fmt.Sprintf("%ds", e.Report.FocusSeconds),
		})
	}
	summary := fmt.Sprintf("%d pending, %s unsent", len(entries), FormatFocusTotal(total))
	return RenderTable(headers, rows) + StyleYellow.Render(summary)
}

// FormatFlush renders the outcome of a retry queue flush.
func FormatFlush(succeeded, failed int) string {
	switch {
	case succeeded == 0 && failed == 0:
		return Dim("Nothing to send.")
	case failed == 0:
		return StyleGreen.Render(fmt.Sprintf("Sent %d queued report(s).", succeeded))
	default:
		return StyleYellow.Render(fmt.Sprintf("Sent %d, %d still queued.", succeeded, failed))
	}
}

// FormatStats renders the my-page statistics card.
func FormatStats(name string, totalSeconds int64, pending int) string {
	body := fmt.Sprintf("%s  %s\n%s  %s",
		StyleDim.Render("MEMBER     "), Bold(name),
		StyleDim.Render("FOCUS TIME "), StyleGreen.Render(FormatFocusTotal(totalSeconds)))
	if pending > 0 {
		body += fmt.Sprintf("\n%s  %s", StyleDim.Render("UNSENT     "), StyleYellow.Render(fmt.Sprintf("%d report(s)", pending)))
	}
	return RenderBox("My page", body)
}
