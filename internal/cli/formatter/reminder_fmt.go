package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/era/internal/domain"
)

// FormatReminders lists daily slots and highlights the next one to fire.
func FormatReminders(reminders []domain.Reminder, next *domain.Reminder, nextAt time.Time, now time.Time) string {
	if len(reminders) == 0 {
		return Dim("No reminders set. Use `era reminders set 08:00 20:30`.") + "\n"
	}
	var b strings.Builder
	b.WriteString(Header("Daily reminders"))
	b.WriteString("\n")
	for _, r := range reminders {
		marker := "  "
		line := r.String()
		if next != nil && *next == r {
			marker = StyleGreen.Render("▸ ")
			line = Bold(line) + "  " + Dim(fmt.Sprintf("next, in %s", formatUntil(nextAt.Sub(now))))
		}
		b.WriteString(marker + line + "\n")
	}
	return b.String()
}

func formatUntil(d time.Duration) string {
	if d < time.Minute {
		return "under a minute"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
