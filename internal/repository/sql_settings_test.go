package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/era/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteSettingsRepo(testutil.NewTestDB(t))

	_, err := repo.GetInt(context.Background(), "dailyBreathingGoal")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSettingsRepo_SetThenOverwrite(t *testing.T) {
	repo := NewSQLiteSettingsRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SetInt(ctx, "dailyBreathingGoal", 5))
	v, err := repo.GetInt(ctx, "dailyBreathingGoal")
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	require.NoError(t, repo.SetInt(ctx, "dailyBreathingGoal", 2))
	v, err = repo.GetInt(ctx, "dailyBreathingGoal")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}
