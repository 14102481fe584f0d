package formatter

import (
	"fmt"

	"github.com/alexanderramin/era/internal/contract"
	"github.com/alexanderramin/era/internal/domain"
)

const breathBarWidth = 24

// FormatPhaseLine is the plain-output line printed when a phase starts.
func FormatPhaseLine(p domain.Phase, seconds float64) string {
	if p == domain.PhaseDone {
		return PhaseStyle(p).Render(p.Prompt())
	}
	return fmt.Sprintf("%s %s", PhaseStyle(p).Render(fmt.Sprintf("%-12s", p.Prompt())), Dim(fmt.Sprintf("%.0fs", seconds)))
}

// FormatBreath renders the progress bar for the current phase.
func FormatBreath(p domain.Phase, progress float64) string {
	return PhaseStyle(p).Render(RenderBreathBar(progress, breathBarWidth))
}

// FormatSessionComplete is shown after a recorded session.
func FormatSessionComplete(rec *domain.SessionRecord, progress contract.GoalProgressView) string {
	msg := fmt.Sprintf("Session complete in %s. %d / %d today.", FormatSeconds(rec.Duration()), progress.Done, progress.Goal)
	if progress.Met {
		msg += " " + StyleGreen.Render("Daily goal reached!")
	}
	return msg
}
