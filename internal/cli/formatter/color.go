package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Background RGB components, shared with the heat-map blend.
const bgR, bgG, bgB = 0x1e, 0x22, 0x2a

// Palette. Warm accents over a slate background; heat cells tint toward red.
var (
	ColorGreen  = lipgloss.Color("#a3be8c")
	ColorYellow = lipgloss.Color("#ebcb8b")
	ColorRed    = lipgloss.Color("#bf616a")
	ColorBlue   = lipgloss.Color("#81a1c1")
	ColorPurple = lipgloss.Color("#b48ead")
	ColorDim    = lipgloss.Color("#6b7385")
	ColorFg     = lipgloss.Color("#e5e9f0")
	ColorBg     = lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", bgR, bgG, bgB))
	ColorHeader = lipgloss.Color("#d08770")
)

var (
	StyleGreen  = fg(ColorGreen)
	StyleYellow = fg(ColorYellow)
	StyleRed    = fg(ColorRed)
	StyleBlue   = fg(ColorBlue)
	StylePurple = fg(ColorPurple)
	StyleDim    = fg(ColorDim)
	StyleFg     = fg(ColorFg)
	StyleHeader = fg(ColorHeader).Bold(true)
	StyleBold   = fg(ColorFg).Bold(true)
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var checkpointBadges = map[string]string{
	"acknowledged": StyleGreen.Render("● SENT"),
	"queued":       StyleYellow.Render("● QUEUED"),
}

// CheckpointBadge renders a checkpoint outcome name as a colored status.
// Anything other than a delivery or a queued delta means nothing was new.
func CheckpointBadge(outcome string) string {
	if badge, ok := checkpointBadges[outcome]; ok {
		return badge
	}
	return StyleDim.Render("○ NOTHING NEW")
}

// Header renders an upper-cased section title over a rule of equal width.
func Header(text string) string {
	title := strings.ToUpper(text)
	return StyleHeader.Render(title) + "\n" + StyleDim.Render(strings.Repeat("─", lipgloss.Width(title)))
}

func Dim(text string) string  { return StyleDim.Render(text) }
func Bold(text string) string { return StyleBold.Render(text) }
