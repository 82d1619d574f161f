package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
	"github.com/alexanderramin/tandem/internal/scheduler"
	"github.com/charmbracelet/lipgloss"
)

// HeatColor returns the cell color for a vote count. The base tint loses
// green and blue as the count grows and is blended over the background by
// the cell weight. A zero count is the plain background.
func HeatColor(count int) lipgloss.Color {
	weight := scheduler.CellWeight(count)
	if weight == 0 {
		return ColorBg
	}
	r, g, b := 255, max(100, 255-count*30), max(100, 255-count*40)
	blend := func(c, bg int) int {
		return int(math.Round(float64(bg) + (float64(c)-float64(bg))*weight))
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", blend(r, bgR), blend(g, bgG), blend(b, bgB)))
}

// DayLabel renders a day column header: weekday and day of month.
func DayLabel(today time.Time, offset int) string {
	d := today.AddDate(0, 0, offset)
	return fmt.Sprintf("%s %2d", d.Format("Mon"), d.Day())
}

const cellWidth = 7

// RenderHeatMap renders the team grid: one row per hour, one column per day
// offset from today, each cell shaded by its vote count. The highlighted slot
// is outlined with brackets.
func RenderHeatMap(votes domain.VoteMap, today time.Time, highlight *domain.Slot) string {
	var b strings.Builder

	b.WriteString(strings.Repeat(" ", 6))
	for day := 0; day < domain.DaysPerWeek; day++ {
		b.WriteString(StyleHeader.Width(cellWidth).Align(lipgloss.Center).Render(DayLabel(today, day)))
	}
	b.WriteString("\n")

	for hour := domain.FirstHour; hour <= domain.LastHour; hour++ {
		b.WriteString(Dim(fmt.Sprintf("%02d:00 ", hour)))
		for day := 0; day < domain.DaysPerWeek; day++ {
			slot := domain.Slot{Hour: hour, Day: day}
			count := votes[slot]
			text := "·"
			if count > 0 {
				text = fmt.Sprintf("%d", count)
			}
			if highlight != nil && *highlight == slot {
				text = "[" + text + "]"
			}
			style := lipgloss.NewStyle().
				Width(cellWidth).
				Align(lipgloss.Center).
				Background(HeatColor(count))
			if count > 0 {
				style = style.Foreground(ColorBg).Bold(true)
			} else {
				style = style.Foreground(ColorDim)
			}
			b.WriteString(style.Render(text))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderPersonalGrid renders one member's selection in the same layout as
// the heat map.
func RenderPersonalGrid(g *domain.Grid, today time.Time) string {
	var b strings.Builder

	b.WriteString(strings.Repeat(" ", 6))
	for day := 0; day < domain.DaysPerWeek; day++ {
		b.WriteString(StyleHeader.Width(cellWidth).Align(lipgloss.Center).Render(DayLabel(today, day)))
	}
	b.WriteString("\n")

	selected := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Foreground(ColorGreen)
	empty := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Foreground(ColorDim)
	for hour := domain.FirstHour; hour <= domain.LastHour; hour++ {
		b.WriteString(Dim(fmt.Sprintf("%02d:00 ", hour)))
		for day := 0; day < domain.DaysPerWeek; day++ {
			if g.Has(domain.Slot{Hour: hour, Day: day}) {
				b.WriteString(selected.Render("■"))
			} else {
				b.WriteString(empty.Render("·"))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
