package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func clampFrac(frac float64) float64 {
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

func bar(frac float64, width int) (string, float64) {
	frac = clampFrac(frac)
	if width < 2 {
		width = 2
	}
	filled := int(frac * float64(width))
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled), frac
}

// RenderProgress renders a progress bar like [████░░░░]  45%.
// Red below a third, yellow below two thirds, green above.
func RenderProgress(frac float64, width int) string {
	b, frac := bar(frac, width)
	style := StyleGreen
	if frac < 0.33 {
		style = StyleRed
	} else if frac < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(b), frac*100)
}

// RenderCompactBar renders just the blocks, used inside tables and trees.
func RenderCompactBar(frac float64, width int, dim bool) string {
	b, _ := bar(frac, width)
	if dim {
		return StyleDim.Render(b)
	}
	return StyleBlue.Render(b)
}
