package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderAgreement renders how many members share a slot, like
// [████░░░░] 3/4. Green once everyone agrees, yellow from half, red below.
func RenderAgreement(votes, members, width int) string {
	if members <= 0 {
		return Dim("no members")
	}
	votes = min(max(votes, 0), members)
	width = max(width, 2)

	pct := float64(votes) / float64(members)
	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct < 0.5:
		style = StyleRed
	case pct < 1:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), votes, members)
}
