package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/era/internal/contract"
	"github.com/alexanderramin/era/internal/stats"
)

func intervalOrDash(d *time.Duration, suffix string) string {
	if d == nil {
		return StyleDim.Render("--")
	}
	return stats.FormatInterval(*d) + suffix
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// FormatGoal renders "2 / 3 today" with a progress bar.
func FormatGoal(g contract.GoalProgressView) string {
	ratio := 0.0
	if g.Goal > 0 {
		ratio = float64(g.Done) / float64(g.Goal)
	}
	line := fmt.Sprintf("%s  %s", Bold(fmt.Sprintf("%d / %d", g.Done, g.Goal)), RenderProgress(ratio, 12))
	if g.Met {
		line += "  " + StyleGreen.Render("✔ goal met")
	}
	return line
}

func formatSeries(s contract.SeriesView) string {
	return fmt.Sprintf("%s  %s", StyleBlue.Render(Sparkline(s.Normalized)), Dim(fmt.Sprintf("%d in %d days", s.Total, s.Days)))
}

// FormatSummary renders the stats screen.
func FormatSummary(sum *contract.AnalyticsSummary) string {
	var b strings.Builder

	b.WriteString(KeyValue([][2]string{
		{"Today", FormatGoal(sum.Goal)},
		{"This week", fmt.Sprintf("%d", sum.ThisWeek)},
		{"This month", fmt.Sprintf("%d", sum.ThisMonth)},
		{"Streak", plural(sum.CurrentStreak, "day", "days")},
		{"Best streak", plural(sum.LongestStreak, "day", "days")},
		{"Total time", FormatMinutes(sum.TotalMinutes)},
	}))
	b.WriteString("\n\n")

	b.WriteString(KeyValue([][2]string{
		{"Last session", intervalOrDash(sum.SinceLastSession, " ago")},
		{"Avg interval", intervalOrDash(sum.AverageInterval, "")},
		{"Usual time", BucketBadge(sum.DominantTimeOfDay)},
	}))
	b.WriteString("\n\n")

	b.WriteString(KeyValue([][2]string{
		{"Last 7 days", formatSeries(sum.Weekly)},
		{"Last 30 days", formatSeries(sum.Monthly)},
	}))

	return RenderBox("Breathing", b.String())
}
