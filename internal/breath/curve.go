package breath

import (
	"math"
	"time"

	"github.com/alexanderramin/era/internal/domain"
)

// Each beat surges most of the way to its target, eases back a little, then
// settles. Offsets are fractions of the beat, levels fractions of its span.
const (
	surgeEnd     = 0.58
	retreatEnd   = 0.72
	surgeLevel   = 0.88
	retreatLevel = 0.78
)

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func easeOut(x float64) float64 {
	return 1 - math.Pow(1-x, 3)
}

func easeInOut(x float64) float64 {
	if x < 0.5 {
		return 4 * x * x * x
	}
	return 1 - math.Pow(-2*x+2, 3)/2
}

// beatFill maps position within a beat to the fraction of the beat's span.
func beatFill(f float64) float64 {
	switch {
	case f < surgeEnd:
		return surgeLevel * easeOut(f/surgeEnd)
	case f < retreatEnd:
		return surgeLevel + (retreatLevel-surgeLevel)*easeInOut((f-surgeEnd)/(retreatEnd-surgeEnd))
	default:
		return retreatLevel + (1-retreatLevel)*easeOut((f-retreatEnd)/(1-retreatEnd))
	}
}

func rise(elapsed, total time.Duration, beats int) float64 {
	if total <= 0 {
		return 1
	}
	if beats < 1 {
		beats = 1
	}
	frac := clamp01(float64(elapsed) / float64(total))
	if frac >= 1 {
		return 1
	}
	pos := frac * float64(beats)
	i := math.Floor(pos)
	return clamp01((i + beatFill(pos-i)) / float64(beats))
}

// ProgressAt is breath fullness in [0,1] at elapsed time into phase p.
func ProgressAt(p domain.Phase, elapsed time.Duration, t Timing) float64 {
	switch p {
	case domain.PhaseInhale:
		return rise(elapsed, t.Inhale, t.Beats)
	case domain.PhaseHold:
		return 1
	case domain.PhaseExhale:
		return 1 - rise(elapsed, t.Exhale, t.Beats)
	default:
		return 0
	}
}

// BeatAt is the zero-based beat index at elapsed time into phase p.
func BeatAt(p domain.Phase, elapsed time.Duration, t Timing) int {
	total := t.PhaseDuration(p)
	if total <= 0 || t.Beats < 1 || p == domain.PhaseHold {
		return 0
	}
	b := int(clamp01(float64(elapsed)/float64(total)) * float64(t.Beats))
	if b >= t.Beats {
		b = t.Beats - 1
	}
	return b
}

// PulseAt is the hold-phase oscillation, a sine of the configured amplitude
// completing PulseCycles periods over the hold.
func PulseAt(elapsed time.Duration, t Timing) float64 {
	if t.Hold <= 0 || t.PulseCycles <= 0 {
		return 0
	}
	x := clamp01(float64(elapsed) / float64(t.Hold))
	return t.PulseAmplitude * math.Sin(2*math.Pi*float64(t.PulseCycles)*x)
}
