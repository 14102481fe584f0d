package domain

// TrendSeries holds per-day counts ordered oldest to newest.
type TrendSeries struct {
	Counts []int
}

func (t TrendSeries) Len() int {
	return len(t.Counts)
}

func (t TrendSeries) Total() int {
	total := 0
	for _, c := range t.Counts {
		total += c
	}
	return total
}

func (t TrendSeries) Max() int {
	max := 0
	for _, c := range t.Counts {
		if c > max {
			max = c
		}
	}
	return max
}

// Normalized scales each count into [0,1] by the series maximum. An all-zero
// series normalizes to all zeros.
func (t TrendSeries) Normalized() []float64 {
	out := make([]float64, len(t.Counts))
	max := t.Max()
	if max <= 0 {
		return out
	}
	for i, c := range t.Counts {
		out[i] = float64(c) / float64(max)
	}
	return out
}
