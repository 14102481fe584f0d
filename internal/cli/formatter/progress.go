package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

func clampRatio(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = clampRatio(pct)
	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar(pct, width)), pct*100)
}

// RenderBreathBar is a bare bar without brackets or percentage, used for the
// plain breathing display.
func RenderBreathBar(pct float64, width int) string {
	return bar(clampRatio(pct), width)
}

func bar(pct float64, width int) string {
	if width < 2 {
		width = 2
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

// Sparkline renders normalized values in [0,1] as block characters. Zero
// renders as the lowest block so empty days stay visible.
func Sparkline(normalized []float64) string {
	var b strings.Builder
	top := len(sparkLevels) - 1
	for _, v := range normalized {
		idx := int(clampRatio(v)*float64(top) + 0.5)
		b.WriteRune(sparkLevels[idx])
	}
	return b.String()
}
