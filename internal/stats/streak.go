package stats

import (
	"time"

	"github.com/alexanderramin/era/internal/domain"
)

type dayKey struct {
	y int
	m time.Month
	d int
}

func keyOf(t time.Time) dayKey {
	y, m, d := t.Date()
	return dayKey{y, m, d}
}

func activeDays(records []*domain.SessionRecord, now time.Time) map[dayKey]bool {
	days := make(map[dayKey]bool, len(records))
	for _, r := range records {
		days[keyOf(r.Timestamp(now).In(now.Location()))] = true
	}
	return days
}

// CurrentStreak counts consecutive local days with at least one session,
// ending today. A streak that ended yesterday is still current until today
// closes without a session.
func CurrentStreak(records []*domain.SessionRecord, now time.Time) int {
	days := activeDays(records, now)
	y, m, d := now.Date()
	loc := now.Location()

	start := 0
	if !days[dayKey{y, m, d}] {
		start = 1
	}
	streak := 0
	for i := start; ; i++ {
		day := time.Date(y, m, d-i, 0, 0, 0, 0, loc)
		if !days[keyOf(day)] {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak is the longest run of consecutive active days on record.
func LongestStreak(records []*domain.SessionRecord, now time.Time) int {
	days := activeDays(records, now)
	loc := now.Location()
	longest := 0
	for k := range days {
		prev := time.Date(k.y, k.m, k.d-1, 0, 0, 0, 0, loc)
		if days[keyOf(prev)] {
			continue
		}
		run := 0
		for i := 0; ; i++ {
			if !days[keyOf(time.Date(k.y, k.m, k.d+i, 0, 0, 0, 0, loc))] {
				break
			}
			run++
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
