package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/era/internal/domain"
)

var ErrNotFound = errors.New("not found")

// SessionRepo is the append-only session store. Range bounds are half-open
// [from, to). List results are ordered by started_at ascending.
type SessionRepo interface {
	Create(ctx context.Context, s *domain.SessionRecord) error
	GetByID(ctx context.Context, id string) (*domain.SessionRecord, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*domain.SessionRecord, error)
	CountBetween(ctx context.Context, from, to time.Time) (int, error)
	// CountTouching counts records whose start or end falls inside the range.
	CountTouching(ctx context.Context, from, to time.Time) (int, error)
	// ListSince lists records started at or after from; nil lists all.
	ListSince(ctx context.Context, from *time.Time) ([]*domain.SessionRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.SessionRecord, error)
	CountCompleted(ctx context.Context) (int, error)
}

type SettingsRepo interface {
	GetInt(ctx context.Context, key string) (int, error)
	SetInt(ctx context.Context, key string, value int) error
}

type ReminderRepo interface {
	List(ctx context.Context) ([]domain.Reminder, error)
	ReplaceAll(ctx context.Context, reminders []domain.Reminder) error
}
