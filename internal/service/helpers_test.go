package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/era/internal/domain"
	"github.com/alexanderramin/era/internal/repository"
	"github.com/alexanderramin/era/internal/testutil"
	"github.com/stretchr/testify/require"
)

// svcNow is a Wednesday.
var svcNow = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) failures() []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range o.events {
		if !e.Success {
			out = append(out, e)
		}
	}
	return out
}

func seedSessions(t *testing.T, repo repository.SessionRepo, records ...*domain.SessionRecord) {
	t.Helper()
	ctx := context.Background()
	for _, r := range records {
		require.NoError(t, repo.Create(ctx, r))
	}
}

func at(d time.Duration) *domain.SessionRecord {
	return testutil.NewTestSession(svcNow.Add(d))
}

var errStoreDown = errors.New("store unavailable")

// brokenSessionRepo fails every read.
type brokenSessionRepo struct{}

func (brokenSessionRepo) Create(context.Context, *domain.SessionRecord) error { return errStoreDown }
func (brokenSessionRepo) GetByID(context.Context, string) (*domain.SessionRecord, error) {
	return nil, errStoreDown
}
func (brokenSessionRepo) ListBetween(context.Context, time.Time, time.Time) ([]*domain.SessionRecord, error) {
	return nil, errStoreDown
}
func (brokenSessionRepo) CountBetween(context.Context, time.Time, time.Time) (int, error) {
	return 0, errStoreDown
}
func (brokenSessionRepo) CountTouching(context.Context, time.Time, time.Time) (int, error) {
	return 0, errStoreDown
}
func (brokenSessionRepo) ListSince(context.Context, *time.Time) ([]*domain.SessionRecord, error) {
	return nil, errStoreDown
}
func (brokenSessionRepo) ListRecent(context.Context, int) ([]*domain.SessionRecord, error) {
	return nil, errStoreDown
}
func (brokenSessionRepo) CountCompleted(context.Context) (int, error) { return 0, errStoreDown }

type brokenGoalStore struct{}

func (brokenGoalStore) DailyGoal(context.Context) (int, error) { return 0, errStoreDown }
func (brokenGoalStore) SetDailyGoal(_ context.Context, goal int) (int, error) {
	return goal, errStoreDown
}
