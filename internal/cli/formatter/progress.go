package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBudgetBar renders how much of a client's budget is consumed, like
// [████░░░░] 45%. The bar is colored by remaining hours; a client with no
// budget renders an empty bar.
func RenderBudgetBar(consumed, available float64, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if available > 0 {
		pct = consumed / available
	}
	shown := pct
	if shown < 0 {
		shown = 0
	}
	if shown > 1 {
		shown = 1
	}

	filled := int(shown * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := RemainingStyle(available - consumed)
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}
