package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/era/internal/db"
	"github.com/alexanderramin/era/internal/domain"
	"github.com/alexanderramin/era/internal/repository"
)

type reminderService struct {
	reminders repository.ReminderRepo
	uow       db.UnitOfWork
	dialect   db.Dialect
	observer  UseCaseObserver
}

func NewReminderService(
	reminders repository.ReminderRepo,
	uow db.UnitOfWork,
	dialect db.Dialect,
	observers ...UseCaseObserver,
) ReminderService {
	return &reminderService{
		reminders: reminders,
		uow:       uow,
		dialect:   dialect,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *reminderService) List(ctx context.Context) ([]domain.Reminder, error) {
	return s.reminders.List(ctx)
}

// Schedule drops every existing slot and stores the new set, deduplicated
// and ordered by time of day. Either all slots are replaced or none are.
func (s *reminderService) Schedule(ctx context.Context, reminders []domain.Reminder) (stored []domain.Reminder, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "schedule-reminders",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"requested": len(reminders), "stored": len(stored)},
		})
	}()

	for _, r := range reminders {
		if err = r.Validate(); err != nil {
			return nil, err
		}
	}
	normalized := domain.NormalizeReminders(reminders)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewReminderRepo(tx, s.dialect).ReplaceAll(ctx, normalized)
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling reminders: %w", err)
	}
	return normalized, nil
}

// Next returns the earliest upcoming slot, or nil when none are scheduled.
func (s *reminderService) Next(ctx context.Context, now time.Time) (*UpcomingReminder, error) {
	reminders, err := s.reminders.List(ctx)
	if err != nil {
		return nil, err
	}
	var next *UpcomingReminder
	for _, r := range reminders {
		at := r.NextFire(now)
		if next == nil || at.Before(next.At) {
			next = &UpcomingReminder{Reminder: r, At: at}
		}
	}
	return next, nil
}
