package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/era/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PhaseColor is the accent used while a breathing phase runs.
func PhaseColor(p domain.Phase) lipgloss.Color {
	switch p {
	case domain.PhaseInhale:
		return ColorBlue
	case domain.PhaseHold:
		return ColorPurple
	case domain.PhaseExhale:
		return ColorGreen
	default:
		return ColorDim
	}
}

func PhaseStyle(p domain.Phase) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(PhaseColor(p)).Bold(true)
}

// BucketBadge renders a time-of-day bucket such as "☀ Morning".
func BucketBadge(b *domain.DaytimeBucket) string {
	if b == nil {
		return StyleDim.Render("--")
	}
	switch *b {
	case domain.DaytimeMorning:
		return StyleYellow.Render("☀ " + b.Label())
	case domain.DaytimeLunch:
		return StyleGreen.Render("◐ " + b.Label())
	default:
		return StylePurple.Render("☾ " + b.Label())
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
