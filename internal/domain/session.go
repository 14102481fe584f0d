package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRecord = errors.New("invalid session record")

// SessionRecord is one breathing session. EndedAt is nil while a session is
// in progress or was abandoned; once set the record is never modified.
type SessionRecord struct {
	ID          string
	StartedAt   time.Time
	EndedAt     *time.Time
	DurationSec *float64
}

// NewCompletedRecord builds the record persisted when a session reaches Done.
func NewCompletedRecord(id string, startedAt, endedAt time.Time) *SessionRecord {
	end := endedAt
	dur := endedAt.Sub(startedAt).Seconds()
	if dur < 0 {
		dur = 0
	}
	return &SessionRecord{
		ID:          id,
		StartedAt:   startedAt,
		EndedAt:     &end,
		DurationSec: &dur,
	}
}

func (s *SessionRecord) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidRecord)
	}
	if s.EndedAt != nil && s.EndedAt.Before(s.StartedAt) {
		return fmt.Errorf("%w: ended_at %s precedes started_at %s",
			ErrInvalidRecord, s.EndedAt.Format(time.RFC3339), s.StartedAt.Format(time.RFC3339))
	}
	return nil
}

func (s *SessionRecord) IsComplete() bool {
	return s.EndedAt != nil
}

// Duration prefers the stored duration and otherwise derives it from the
// start and end timestamps. Negative values count as zero.
func (s *SessionRecord) Duration() time.Duration {
	if s.DurationSec != nil {
		return secondsToDuration(*s.DurationSec)
	}
	if s.EndedAt != nil && !s.StartedAt.IsZero() {
		return secondsToDuration(s.EndedAt.Sub(s.StartedAt).Seconds())
	}
	return 0
}

// Timestamp returns the time used to place a record on the timeline:
// StartedAt, else EndedAt, else now.
func (s *SessionRecord) Timestamp(now time.Time) time.Time {
	if !s.StartedAt.IsZero() {
		return s.StartedAt
	}
	if s.EndedAt != nil {
		return *s.EndedAt
	}
	return now
}

func secondsToDuration(sec float64) time.Duration {
	if sec <= 0 {
		return 0
	}
	return time.Duration(sec * float64(time.Second))
}
