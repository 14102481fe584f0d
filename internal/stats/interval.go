package stats

import (
	"sort"
	"time"

	"github.com/alexanderramin/era/internal/domain"
)

// SortByTimestamp orders records by their representative timestamp. The
// input slice is not modified.
func SortByTimestamp(records []*domain.SessionRecord, now time.Time) []*domain.SessionRecord {
	sorted := make([]*domain.SessionRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp(now).Before(sorted[j].Timestamp(now))
	})
	return sorted
}

// AverageInterval is the mean gap between consecutive sessions. Zero and
// negative gaps (duplicate timestamps) are skipped. ok is false with fewer
// than two records or when no positive gap remains.
func AverageInterval(records []*domain.SessionRecord, now time.Time) (avg time.Duration, ok bool) {
	if len(records) < 2 {
		return 0, false
	}
	sorted := SortByTimestamp(records, now)

	var sum time.Duration
	var n int
	for i := 1; i < len(sorted); i++ {
		delta := sorted[i].Timestamp(now).Sub(sorted[i-1].Timestamp(now))
		if delta > 0 {
			sum += delta
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / time.Duration(n), true
}

// SinceLatest is the time elapsed since the newest record's timestamp.
func SinceLatest(records []*domain.SessionRecord, now time.Time) (time.Duration, bool) {
	if len(records) == 0 {
		return 0, false
	}
	latest := records[0].Timestamp(now)
	for _, r := range records[1:] {
		if ts := r.Timestamp(now); ts.After(latest) {
			latest = ts
		}
	}
	since := now.Sub(latest)
	if since < 0 {
		since = 0
	}
	return since, true
}
