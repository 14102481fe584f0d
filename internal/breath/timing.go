// Package breath runs a single guided breathing session: a fixed
// inhale, hold, exhale sequence that reports progress frames while it runs
// and records the session once every phase has completed.
package breath

import (
	"time"

	"github.com/alexanderramin/era/internal/domain"
)

// Timing configures phase lengths and the shape of the progress signal.
type Timing struct {
	Inhale time.Duration
	Hold   time.Duration
	Exhale time.Duration
	// Gap is the pause between phases used for a feedback pulse.
	Gap time.Duration

	// Beats is the number of surge/retreat/settle steps per inhale or exhale.
	Beats int

	PulseAmplitude float64
	PulseCycles    int

	// FrameInterval is how often progress frames are emitted inside a
	// phase. Zero emits only phase entry and exit frames.
	FrameInterval time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		Inhale:         4 * time.Second,
		Hold:           2 * time.Second,
		Exhale:         4 * time.Second,
		Gap:            time.Second,
		Beats:          4,
		PulseAmplitude: 0.06,
		PulseCycles:    3,
		FrameInterval:  33 * time.Millisecond,
	}
}

// ZeroTiming runs every phase instantly.
func ZeroTiming() Timing {
	return Timing{Beats: 4, PulseAmplitude: 0.06, PulseCycles: 3}
}

func (t Timing) PhaseDuration(p domain.Phase) time.Duration {
	switch p {
	case domain.PhaseInhale:
		return t.Inhale
	case domain.PhaseHold:
		return t.Hold
	case domain.PhaseExhale:
		return t.Exhale
	default:
		return 0
	}
}

// Total is the wall-clock length of a full sequence including gaps.
func (t Timing) Total() time.Duration {
	return t.Inhale + t.Hold + t.Exhale + 2*t.Gap
}
