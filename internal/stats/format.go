package stats

import (
	"fmt"
	"time"
)

// FormatInterval renders a gap as "2d 3h", "4h 10m" or "25m".
func FormatInterval(d time.Duration) string {
	minutes := int(d / time.Minute)
	hours := minutes / 60
	days := hours / 24
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours%24)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
