package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/era/internal/domain"
	"github.com/alexanderramin/era/internal/repository"
)

type settingsGoalStore struct {
	settings repository.SettingsRepo
}

// NewGoalStore keeps the daily goal in the settings table.
func NewGoalStore(settings repository.SettingsRepo) GoalStore {
	return &settingsGoalStore{settings: settings}
}

func (g *settingsGoalStore) DailyGoal(ctx context.Context) (int, error) {
	v, err := g.settings.GetInt(ctx, domain.DailyGoalKey)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.DefaultDailyGoal, nil
	}
	if err != nil {
		return domain.DefaultDailyGoal, fmt.Errorf("reading daily goal: %w", err)
	}
	return domain.ClampGoal(v), nil
}

func (g *settingsGoalStore) SetDailyGoal(ctx context.Context, goal int) (int, error) {
	goal = domain.ClampGoal(goal)
	if err := g.settings.SetInt(ctx, domain.DailyGoalKey, goal); err != nil {
		return goal, fmt.Errorf("saving daily goal: %w", err)
	}
	return goal, nil
}
