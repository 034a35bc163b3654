package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderTaskProgress renders done out of total as a bar followed by the
// count, e.g. [██████░░░░] 3/5. The bar turns yellow below two thirds and red
// below one third. A zero total renders an empty bar.
func RenderTaskProgress(done, total, width int) string {
	width = max(width, 2)
	done = min(max(done, 0), total)

	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case done*3 < total:
		style = StyleRed
	case done*3 < total*2:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), done, total)
}
