package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/era/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAccess_ReadDuringWrite mirrors normal operation: one writer
// appending completed sessions while analytics readers query counts.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	ctx := context.Background()

	const writes = 20
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			s := testutil.NewTestSession(repoBase.Add(time.Duration(i) * time.Minute))
			if err := repo.Create(ctx, s); err != nil {
				t.Errorf("writer: %v", err)
				return
			}
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				n, err := repo.CountBetween(ctx, repoBase, repoBase.Add(24*time.Hour))
				if err != nil {
					t.Errorf("reader: %v", err)
					return
				}
				if n < 0 || n > writes {
					t.Errorf("reader saw impossible count %d", n)
					return
				}
			}
		}()
	}

	wg.Wait()

	n, err := repo.CountBetween(ctx, repoBase, repoBase.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, writes, n)
}

// Goal updates from the CLI and the API may race; the upsert keeps exactly
// one row and the last writer wins.
func TestConcurrentAccess_GoalUpserts(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	repo := NewSQLiteSettingsRepo(database)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			if err := repo.SetInt(ctx, "dailyBreathingGoal", v); err != nil {
				t.Errorf("writer %d: %v", v, err)
			}
		}(i)
	}
	wg.Wait()

	var rows int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM settings`).Scan(&rows))
	assert.Equal(t, 1, rows)

	v, err := repo.GetInt(ctx, "dailyBreathingGoal")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v, 1)
	assert.LessOrEqual(t, v, 8)
}
