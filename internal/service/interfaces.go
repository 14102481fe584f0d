package service

import (
	"context"
	"time"

	"github.com/alexanderramin/era/internal/breath"
	"github.com/alexanderramin/era/internal/contract"
	"github.com/alexanderramin/era/internal/domain"
)

// AnalyticsService answers questions about session history. Reads never
// fail: store errors are reported to the observer and the zero value is
// returned.
type AnalyticsService interface {
	SessionsOn(ctx context.Context, date time.Time) []*domain.SessionRecord
	CountToday(ctx context.Context) int
	CountThisWeek(ctx context.Context, ref time.Time) int
	CountThisMonth(ctx context.Context, ref time.Time) int
	AverageIntervalBetweenSessions(ctx context.Context, daysBack *int) *time.Duration
	DominantTimeOfDay(ctx context.Context, daysBack *int) *domain.DaytimeBucket
	DailyCounts(ctx context.Context, days int) domain.TrendSeries
	TotalMinutesAllTime(ctx context.Context) int
	DailyGoal(ctx context.Context) int
	SetDailyGoal(ctx context.Context, goal int) int

	TimeSinceLastSession(ctx context.Context) *time.Duration
	CurrentStreak(ctx context.Context) int
	GoalProgress(ctx context.Context) domain.GoalProgress
	Summary(ctx context.Context) *contract.AnalyticsSummary
}

type SessionService interface {
	// StartSession runs one guided session, streaming frames to obs.
	StartSession(ctx context.Context, obs breath.Observer, opts ...StartOption) (*domain.SessionRecord, error)
	CanStart(ctx context.Context) (bool, error)
	Record(ctx context.Context, s *domain.SessionRecord) error
	GetByID(ctx context.Context, id string) (*domain.SessionRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.SessionRecord, error)
}

// UpcomingReminder is the next time a reminder slot fires.
type UpcomingReminder struct {
	Reminder domain.Reminder
	At       time.Time
}

type ReminderService interface {
	List(ctx context.Context) ([]domain.Reminder, error)
	// Schedule replaces every stored slot with the given set.
	Schedule(ctx context.Context, reminders []domain.Reminder) ([]domain.Reminder, error)
	Next(ctx context.Context, now time.Time) (*UpcomingReminder, error)
}

type GoalStore interface {
	DailyGoal(ctx context.Context) (int, error)
	SetDailyGoal(ctx context.Context, goal int) (int, error)
}

type EntitlementProvider interface {
	IsPro(ctx context.Context) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func clockOrSystem(c Clock) Clock {
	if c == nil {
		return systemClock{}
	}
	return c
}
