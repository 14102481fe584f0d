package service

import (
	"context"
	"time"

	"github.com/alexanderramin/era/internal/contract"
	"github.com/alexanderramin/era/internal/domain"
	"github.com/alexanderramin/era/internal/repository"
	"github.com/alexanderramin/era/internal/stats"
)

const (
	weeklySeriesDays    = 7
	monthlySeriesDays   = 30
	summaryIntervalDays = 60
	summaryDaytimeDays  = 30
)

type analyticsService struct {
	sessions repository.SessionRepo
	goals    GoalStore
	clock    Clock
	loc      *time.Location
	observer UseCaseObserver
}

// NewAnalyticsService builds the analytics engine. Calendar windows are
// computed in loc; a nil loc means time.Local and a nil clock the system
// clock.
func NewAnalyticsService(
	sessions repository.SessionRepo,
	goals GoalStore,
	clock Clock,
	loc *time.Location,
	observers ...UseCaseObserver,
) AnalyticsService {
	if loc == nil {
		loc = time.Local
	}
	return &analyticsService{
		sessions: sessions,
		goals:    goals,
		clock:    clockOrSystem(clock),
		loc:      loc,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *analyticsService) now() time.Time {
	return s.clock.Now().In(s.loc)
}

// readFailed reports a swallowed store error.
func (s *analyticsService) readFailed(ctx context.Context, name string, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: s.clock.Now(),
		Success:   false,
		Err:       err,
	})
}

func (s *analyticsService) countIn(ctx context.Context, name string, rng stats.Range) int {
	n, err := s.sessions.CountBetween(ctx, rng.Start, rng.End)
	if err != nil {
		s.readFailed(ctx, name, err)
		return 0
	}
	return n
}

// listWindow lists records in the trailing daysBack days, or all records
// when daysBack is nil.
func (s *analyticsService) listWindow(ctx context.Context, name string, now time.Time, daysBack *int) []*domain.SessionRecord {
	var from *time.Time
	if daysBack != nil {
		f := stats.DaysBack(now, *daysBack)
		from = &f
	}
	records, err := s.sessions.ListSince(ctx, from)
	if err != nil {
		s.readFailed(ctx, name, err)
		return nil
	}
	return records
}

func (s *analyticsService) SessionsOn(ctx context.Context, date time.Time) []*domain.SessionRecord {
	rng := stats.DayRange(date.In(s.loc))
	records, err := s.sessions.ListBetween(ctx, rng.Start, rng.End)
	if err != nil {
		s.readFailed(ctx, "sessions-on", err)
		return nil
	}
	return records
}

func (s *analyticsService) CountToday(ctx context.Context) int {
	return s.countIn(ctx, "count-today", stats.DayRange(s.now()))
}

func (s *analyticsService) CountThisWeek(ctx context.Context, ref time.Time) int {
	return s.countIn(ctx, "count-week", stats.WeekRange(ref.In(s.loc)))
}

func (s *analyticsService) CountThisMonth(ctx context.Context, ref time.Time) int {
	return s.countIn(ctx, "count-month", stats.MonthRange(ref.In(s.loc)))
}

func (s *analyticsService) AverageIntervalBetweenSessions(ctx context.Context, daysBack *int) *time.Duration {
	now := s.now()
	records := s.listWindow(ctx, "average-interval", now, daysBack)
	avg, ok := stats.AverageInterval(records, now)
	if !ok {
		return nil
	}
	return &avg
}

// DominantTimeOfDay falls back to the full history when the window is empty.
func (s *analyticsService) DominantTimeOfDay(ctx context.Context, daysBack *int) *domain.DaytimeBucket {
	now := s.now()
	records := s.listWindow(ctx, "dominant-time-of-day", now, daysBack)
	if len(records) == 0 && daysBack != nil {
		records = s.listWindow(ctx, "dominant-time-of-day", now, nil)
	}
	bucket, ok := stats.DominantBucket(records, now, s.loc)
	if !ok {
		return nil
	}
	return &bucket
}

// DailyCounts returns one count per day for the trailing days, oldest first.
// A record is counted on each day its start or end falls in.
func (s *analyticsService) DailyCounts(ctx context.Context, days int) domain.TrendSeries {
	ranges := stats.TrailingDays(days, s.now())
	counts := make([]int, len(ranges))
	for i, rng := range ranges {
		n, err := s.sessions.CountTouching(ctx, rng.Start, rng.End)
		if err != nil {
			s.readFailed(ctx, "daily-counts", err)
			continue
		}
		counts[i] = n
	}
	return domain.TrendSeries{Counts: counts}
}

func (s *analyticsService) TotalMinutesAllTime(ctx context.Context) int {
	return stats.TotalMinutes(s.listWindow(ctx, "total-minutes", s.now(), nil))
}

func (s *analyticsService) DailyGoal(ctx context.Context) int {
	goal, err := s.goals.DailyGoal(ctx)
	if err != nil {
		s.readFailed(ctx, "daily-goal", err)
		return domain.DefaultDailyGoal
	}
	return goal
}

func (s *analyticsService) SetDailyGoal(ctx context.Context, goal int) int {
	startedAt := time.Now().UTC()
	stored, err := s.goals.SetDailyGoal(ctx, goal)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "set-daily-goal",
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"requested": goal, "stored": stored},
	})
	if err != nil {
		return domain.ClampGoal(goal)
	}
	return stored
}

func (s *analyticsService) TimeSinceLastSession(ctx context.Context) *time.Duration {
	records, err := s.sessions.ListRecent(ctx, 1)
	if err != nil {
		s.readFailed(ctx, "time-since-last", err)
		return nil
	}
	since, ok := stats.SinceLatest(records, s.now())
	if !ok {
		return nil
	}
	return &since
}

func (s *analyticsService) CurrentStreak(ctx context.Context) int {
	now := s.now()
	return stats.CurrentStreak(s.listWindow(ctx, "current-streak", now, nil), now)
}

func (s *analyticsService) GoalProgress(ctx context.Context) domain.GoalProgress {
	return domain.GoalProgress{Done: s.CountToday(ctx), Goal: s.DailyGoal(ctx)}
}

// Summary assembles the stats screen. The trend series come from the same
// per-day counts as DailyCounts; weekly and monthly totals are the series
// sums while ThisWeek and ThisMonth stay calendar based.
func (s *analyticsService) Summary(ctx context.Context) *contract.AnalyticsSummary {
	startedAt := time.Now().UTC()
	now := s.now()

	monthly := s.DailyCounts(ctx, monthlySeriesDays)
	weekly := domain.TrendSeries{Counts: monthly.Counts[monthlySeriesDays-weeklySeriesDays:]}

	sum := &contract.AnalyticsSummary{
		GeneratedAt: now,
		Today:       s.CountToday(ctx),
		ThisWeek:    s.CountThisWeek(ctx, now),
		ThisMonth:   s.CountThisMonth(ctx, now),
		Weekly:      contract.NewSeriesView(weekly),
		Monthly:     contract.NewSeriesView(monthly),
	}

	intervalDays := summaryIntervalDays
	sum.SetAverageInterval(s.AverageIntervalBetweenSessions(ctx, &intervalDays))
	daytimeDays := summaryDaytimeDays
	sum.DominantTimeOfDay = s.DominantTimeOfDay(ctx, &daytimeDays)
	sum.SetSinceLastSession(s.TimeSinceLastSession(ctx))

	all := s.listWindow(ctx, "summary", now, nil)
	sum.TotalMinutes = stats.TotalMinutes(all)
	sum.CurrentStreak = stats.CurrentStreak(all, now)
	sum.LongestStreak = stats.LongestStreak(all, now)

	progress := domain.GoalProgress{Done: sum.Today, Goal: s.DailyGoal(ctx)}
	sum.Goal = contract.NewGoalProgressView(progress)

	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "analytics-summary",
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   true,
		Fields: map[string]any{
			"today":         sum.Today,
			"total_minutes": sum.TotalMinutes,
		},
	})
	return sum
}
