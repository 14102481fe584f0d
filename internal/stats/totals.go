package stats

import (
	"math"

	"github.com/alexanderramin/era/internal/domain"
)

// TotalMinutes sums record durations and rounds to the nearest minute.
func TotalMinutes(records []*domain.SessionRecord) int {
	var seconds float64
	for _, r := range records {
		seconds += r.Duration().Seconds()
	}
	return int(math.Round(seconds / 60))
}
