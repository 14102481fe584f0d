package domain

type Phase string

const (
	PhaseInhale Phase = "inhale"
	PhaseHold   Phase = "hold"
	PhaseExhale Phase = "exhale"
	PhaseDone   Phase = "done"
)

// ActivePhases are the timed phases in execution order.
var ActivePhases = []Phase{PhaseInhale, PhaseHold, PhaseExhale}

// Next returns the following phase. Done is terminal and maps to itself.
func (p Phase) Next() Phase {
	switch p {
	case PhaseInhale:
		return PhaseHold
	case PhaseHold:
		return PhaseExhale
	default:
		return PhaseDone
	}
}

func (p Phase) IsTerminal() bool {
	return p == PhaseDone
}

// Prompt is the instruction shown while the phase runs.
func (p Phase) Prompt() string {
	switch p {
	case PhaseInhale:
		return "Breathe in"
	case PhaseHold:
		return "Hold"
	case PhaseExhale:
		return "Breathe out"
	case PhaseDone:
		return "Done"
	default:
		return string(p)
	}
}
