package domain

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidReminder = errors.New("invalid reminder")

// Reminder is a daily repeating notification trigger at a local time of day.
type Reminder struct {
	Hour   int
	Minute int
}

// ParseReminder parses "HH:MM" (24-hour clock).
func ParseReminder(s string) (Reminder, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Reminder{}, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidReminder, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return Reminder{}, fmt.Errorf("%w: hour %q", ErrInvalidReminder, hh)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return Reminder{}, fmt.Errorf("%w: minute %q", ErrInvalidReminder, mm)
	}
	r := Reminder{Hour: h, Minute: m}
	if err := r.Validate(); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

func (r Reminder) Validate() error {
	if r.Hour < 0 || r.Hour > 23 {
		return fmt.Errorf("%w: hour %d out of range", ErrInvalidReminder, r.Hour)
	}
	if r.Minute < 0 || r.Minute > 59 {
		return fmt.Errorf("%w: minute %d out of range", ErrInvalidReminder, r.Minute)
	}
	return nil
}

// ID is the stable notification identifier for this slot.
func (r Reminder) ID() string {
	return fmt.Sprintf("era.daily.%d-%d", r.Hour, r.Minute)
}

func (r Reminder) String() string {
	return fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)
}

func (r Reminder) minuteOfDay() int {
	return r.Hour*60 + r.Minute
}

// NextFire returns the first occurrence of the slot strictly after now, in
// now's location.
func (r Reminder) NextFire(now time.Time) time.Time {
	y, mo, d := now.Date()
	at := time.Date(y, mo, d, r.Hour, r.Minute, 0, 0, now.Location())
	if !at.After(now) {
		at = time.Date(y, mo, d+1, r.Hour, r.Minute, 0, 0, now.Location())
	}
	return at
}

// NormalizeReminders sorts slots by time of day and drops duplicates.
func NormalizeReminders(in []Reminder) []Reminder {
	out := make([]Reminder, 0, len(in))
	seen := make(map[int]bool, len(in))
	for _, r := range in {
		if seen[r.minuteOfDay()] {
			continue
		}
		seen[r.minuteOfDay()] = true
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].minuteOfDay() < out[j].minuteOfDay()
	})
	return out
}
