package testutil

import (
	"time"

	"github.com/alexanderramin/era/internal/domain"
	"github.com/google/uuid"
)

// Session options
type SessionOption func(*domain.SessionRecord)

// WithEndedAt marks the session complete at t.
func WithEndedAt(t time.Time) SessionOption {
	return func(s *domain.SessionRecord) {
		s.EndedAt = &t
	}
}

// WithLength ends the session d after it started.
func WithLength(d time.Duration) SessionOption {
	return func(s *domain.SessionRecord) {
		end := s.StartedAt.Add(d)
		s.EndedAt = &end
	}
}

func WithDurationSec(sec float64) SessionOption {
	return func(s *domain.SessionRecord) {
		s.DurationSec = &sec
	}
}

// InProgress clears the end timestamp.
func InProgress() SessionOption {
	return func(s *domain.SessionRecord) {
		s.EndedAt = nil
	}
}

// NewTestSession returns a completed ten second session starting at startedAt.
func NewTestSession(startedAt time.Time, opts ...SessionOption) *domain.SessionRecord {
	end := startedAt.Add(10 * time.Second)
	s := &domain.SessionRecord{
		ID:        uuid.New().String(),
		StartedAt: startedAt,
		EndedAt:   &end,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
