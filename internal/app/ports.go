package app

import (
	"context"
	"time"

	"github.com/alexanderramin/era/internal/domain"
)

type SummaryUseCase interface {
	Summary(ctx context.Context) *AnalyticsSummary
}

type DailyCountsUseCase interface {
	DailyCounts(ctx context.Context, days int) domain.TrendSeries
}

type SessionsOnUseCase interface {
	SessionsOn(ctx context.Context, date time.Time) []*domain.SessionRecord
}

type DailyGoalUseCase interface {
	DailyGoal(ctx context.Context) int
	SetDailyGoal(ctx context.Context, goal int) int
}

type ListRemindersUseCase interface {
	List(ctx context.Context) ([]domain.Reminder, error)
}
