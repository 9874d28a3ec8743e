package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders done out of total as a bar like [████░░░░] 50%.
// The bar is green above two thirds, yellow above one third, red below.
func RenderProgress(done, total, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	pct = min(max(pct, 0), 1)

	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct < 0.33:
		style = StyleRed
	case pct < 0.66:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}
