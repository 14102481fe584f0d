// Package stats holds the side-effect-free calculations behind session
// analytics: calendar windows, interval averaging, time-of-day bucketing,
// streaks and totals. Callers pass in records and a reference time.
package stats

import "time"

// Range is a half-open time window [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

// StartOfDay returns local midnight of the day containing t, in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayRange is the calendar day containing t. Built from dates rather than
// 24h offsets so DST days are 23 or 25 hours long.
func DayRange(t time.Time) Range {
	y, m, d := t.Date()
	loc := t.Location()
	return Range{
		Start: time.Date(y, m, d, 0, 0, 0, 0, loc),
		End:   time.Date(y, m, d+1, 0, 0, 0, 0, loc),
	}
}

// WeekRange is the ISO week (Monday through Sunday) containing t.
func WeekRange(t time.Time) Range {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	loc := t.Location()
	return Range{
		Start: time.Date(y, m, d-offset, 0, 0, 0, 0, loc),
		End:   time.Date(y, m, d-offset+7, 0, 0, 0, 0, loc),
	}
}

// MonthRange is the calendar month containing t.
func MonthRange(t time.Time) Range {
	y, m, _ := t.Date()
	loc := t.Location()
	return Range{
		Start: time.Date(y, m, 1, 0, 0, 0, 0, loc),
		End:   time.Date(y, m+1, 1, 0, 0, 0, 0, loc),
	}
}

// TrailingDays returns n consecutive day ranges ending with the day that
// contains now, oldest first.
func TrailingDays(n int, now time.Time) []Range {
	if n <= 0 {
		return nil
	}
	y, m, d := now.Date()
	loc := now.Location()
	out := make([]Range, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, Range{
			Start: time.Date(y, m, d-i, 0, 0, 0, 0, loc),
			End:   time.Date(y, m, d-i+1, 0, 0, 0, 0, loc),
		})
	}
	return out
}

// DaysBack returns the instant daysBack calendar days before now.
func DaysBack(now time.Time, daysBack int) time.Time {
	return now.AddDate(0, 0, -daysBack)
}
