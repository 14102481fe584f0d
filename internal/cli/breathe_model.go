package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/era/internal/breath"
	"github.com/alexanderramin/era/internal/cli/formatter"
	"github.com/alexanderramin/era/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const maxBarWidth = 60

// frameMsg carries one sequencer frame into the program.
type frameMsg breath.Frame

// sessionDoneMsg is sent once StartSession returns.
type sessionDoneMsg struct {
	err error
}

type breatheKeyMap struct {
	Quit key.Binding
}

func (k breatheKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Quit} }

func (k breatheKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Quit}} }

func newBreatheKeyMap() breatheKeyMap {
	return breatheKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "stop without saving"),
		),
	}
}

// breatheModel draws the running session. It never drives the sequencer:
// frames arrive as messages and quitting only signals the caller to cancel.
type breatheModel struct {
	timing breath.Timing
	frame  breath.Frame
	seen   bool

	bar  progress.Model
	help help.Model
	keys breatheKeyMap

	cancelled bool
	finished  bool
	err       error
}

func newBreatheModel(timing breath.Timing) breatheModel {
	bar := progress.New(
		progress.WithSolidFill(string(formatter.PhaseColor(domain.PhaseInhale))),
		progress.WithoutPercentage(),
		progress.WithWidth(40),
	)
	return breatheModel{
		timing: timing,
		frame:  breath.Frame{Phase: domain.PhaseInhale},
		bar:    bar,
		help:   help.New(),
		keys:   newBreatheKeyMap(),
	}
}

func (m breatheModel) Init() tea.Cmd {
	return nil
}

func (m breatheModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = min(maxBarWidth, max(10, msg.Width-4))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.cancelled = true
			return m, tea.Quit
		}
		return m, nil

	case frameMsg:
		m.frame = breath.Frame(msg)
		m.seen = true
		m.bar.FullColor = string(formatter.PhaseColor(m.frame.Phase))
		return m, nil

	case sessionDoneMsg:
		m.finished = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

// fill is the bar level for the current frame. The hold pulse dips the
// full bar slightly.
func (m breatheModel) fill() float64 {
	v := m.frame.Progress + m.frame.Pulse
	return min(1, max(0, v))
}

func (m breatheModel) View() string {
	if m.finished || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n  ")

	phase := m.frame.Phase
	title := phase.Prompt()
	if !m.seen {
		title = "Get ready"
	}
	b.WriteString(formatter.PhaseStyle(phase).Bold(true).Render(title))
	if m.seen && !m.frame.Gap && m.timing.Beats > 0 && (phase == domain.PhaseInhale || phase == domain.PhaseExhale) {
		b.WriteString("  " + formatter.Dim(fmt.Sprintf("beat %d/%d", m.frame.Beat+1, m.timing.Beats)))
	}
	b.WriteString("\n\n  ")
	b.WriteString(m.bar.ViewAs(m.fill()))
	b.WriteString("\n\n  ")
	b.WriteString(formatter.Dim(fmt.Sprintf("in %s · hold %s · out %s",
		formatter.FormatSeconds(m.timing.Inhale),
		formatter.FormatSeconds(m.timing.Hold),
		formatter.FormatSeconds(m.timing.Exhale),
	)))
	b.WriteString("\n\n  ")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}
