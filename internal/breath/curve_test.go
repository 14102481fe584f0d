package breath

import (
	"testing"
	"time"

	"github.com/alexanderramin/era/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestProgressAt_Endpoints(t *testing.T) {
	timing := DefaultTiming()

	assert.Equal(t, 0.0, ProgressAt(domain.PhaseInhale, 0, timing))
	assert.Equal(t, 1.0, ProgressAt(domain.PhaseInhale, timing.Inhale, timing))
	assert.Equal(t, 1.0, ProgressAt(domain.PhaseHold, time.Second, timing))
	assert.Equal(t, 1.0, ProgressAt(domain.PhaseExhale, 0, timing))
	assert.Equal(t, 0.0, ProgressAt(domain.PhaseExhale, timing.Exhale, timing))
	assert.Equal(t, 0.0, ProgressAt(domain.PhaseDone, 0, timing))
}

func TestProgressAt_BeatKeyframes(t *testing.T) {
	timing := DefaultTiming() // 4s inhale, 4 beats

	// Beat boundaries land exactly on the step.
	assert.InDelta(t, 0.25, ProgressAt(domain.PhaseInhale, time.Second, timing), 1e-9)
	assert.InDelta(t, 0.5, ProgressAt(domain.PhaseInhale, 2*time.Second, timing), 1e-9)

	// Surge peak and retreat inside the first beat.
	assert.InDelta(t, 0.88*0.25, ProgressAt(domain.PhaseInhale, 580*time.Millisecond, timing), 1e-6)
	assert.InDelta(t, 0.78*0.25, ProgressAt(domain.PhaseInhale, 720*time.Millisecond, timing), 1e-6)

	// Exhale mirrors inhale.
	assert.InDelta(t, 1-0.88*0.25, ProgressAt(domain.PhaseExhale, 580*time.Millisecond, timing), 1e-6)
}

func TestProgressAt_StaysInRange(t *testing.T) {
	timing := DefaultTiming()
	for _, p := range domain.ActivePhases {
		for ms := -100; ms <= 4500; ms += 7 {
			v := ProgressAt(p, time.Duration(ms)*time.Millisecond, timing)
			assert.GreaterOrEqual(t, v, 0.0, "%s at %dms", p, ms)
			assert.LessOrEqual(t, v, 1.0, "%s at %dms", p, ms)
		}
	}
}

func TestProgressAt_ZeroDurationCompletes(t *testing.T) {
	timing := ZeroTiming()
	assert.Equal(t, 1.0, ProgressAt(domain.PhaseInhale, 0, timing))
	assert.Equal(t, 0.0, ProgressAt(domain.PhaseExhale, 0, timing))
}

func TestBeatAt(t *testing.T) {
	timing := DefaultTiming()
	assert.Equal(t, 0, BeatAt(domain.PhaseInhale, 0, timing))
	assert.Equal(t, 1, BeatAt(domain.PhaseInhale, 1500*time.Millisecond, timing))
	assert.Equal(t, 3, BeatAt(domain.PhaseExhale, timing.Exhale, timing))
	assert.Equal(t, 0, BeatAt(domain.PhaseHold, time.Second, timing))
}

func TestPulseAt(t *testing.T) {
	timing := DefaultTiming() // 2s hold, 3 cycles, 0.06 amplitude

	assert.InDelta(t, 0.0, PulseAt(0, timing), 1e-9)
	quarterCycle := timing.Hold / 12
	assert.InDelta(t, 0.06, PulseAt(quarterCycle, timing), 1e-6)
	assert.InDelta(t, 0.0, PulseAt(timing.Hold, timing), 1e-9)

	assert.Equal(t, 0.0, PulseAt(time.Second, ZeroTiming()))
}

func TestTiming_Total(t *testing.T) {
	assert.Equal(t, 12*time.Second, DefaultTiming().Total())
	assert.Equal(t, time.Duration(0), ZeroTiming().Total())
}
