package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/focusfive/internal/insights/domain"
	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/migrations"
	taskDomain "github.com/felixgeelhaar/focusfive/internal/tasks/domain"
	taskPersistence "github.com/felixgeelhaar/focusfive/internal/tasks/infrastructure/persistence"
)

func setupSQLite(t *testing.T) database.Connection {
	t.Helper()
	ctx := context.Background()

	conn, err := sqlite.NewConnection(ctx, database.Config{
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	sqliteConn, ok := conn.(*sqlite.Connection)
	require.True(t, ok)
	require.NoError(t, migrations.RunSQLiteMigrations(ctx, sqliteConn.DB()))

	return conn
}

func mustDate(t *testing.T, s string) sharedDomain.Date {
	t.Helper()
	d, err := sharedDomain.NewDate(s)
	require.NoError(t, err)
	return d
}

func TestSQLHistorySource(t *testing.T) {
	conn := setupSQLite(t)
	taskRepo := taskPersistence.NewSQLiteTaskRepository(conn)
	source := NewSQLHistorySource(conn)
	ctx := context.Background()
	userID := uuid.New()

	save := func(day string, priority int, category taskDomain.Category, est, act int, completed bool) {
		task, err := taskDomain.NewTask(userID, "Task", priority, mustDate(t, day))
		require.NoError(t, err)
		require.NoError(t, task.SetCategory(category))
		if est > 0 {
			require.NoError(t, task.SetEstimatedMinutes(est))
		}
		if act > 0 {
			require.NoError(t, task.SetActualMinutes(act))
		}
		if completed {
			task.Toggle(task.CreatedAt())
		}
		require.NoError(t, taskRepo.Save(ctx, task))
	}

	save("2026-08-30", 1, taskDomain.CategoryWork, 30, 45, true)
	save("2026-08-30", 2, taskDomain.CategoryHealth, 0, 0, true)
	save("2026-08-30", 3, taskDomain.CategoryWork, 0, 0, false)
	save("2026-08-29", 1, taskDomain.CategoryWork, 60, 60, true)

	t.Run("recent completed newest first with minutes", func(t *testing.T) {
		records, err := source.RecentCompleted(ctx, userID, 10)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "2026-08-30", records[0].Date.String())
		assert.Equal(t, string(taskDomain.CategoryWork), records[0].Category)
		assert.Equal(t, 30, records[0].EstimatedMinutes)
		assert.Equal(t, 45, records[0].ActualMinutes)
		assert.Equal(t, "2026-08-29", records[2].Date.String())
	})

	t.Run("limit applies", func(t *testing.T) {
		records, err := source.RecentCompleted(ctx, userID, 2)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("day summary counts completed and total", func(t *testing.T) {
		summary, err := source.DaySummary(ctx, userID, mustDate(t, "2026-08-30"))
		require.NoError(t, err)
		assert.Equal(t, 2, summary.Completed)
		assert.Equal(t, 3, summary.Total)
	})

	t.Run("day summary for an empty day is zero", func(t *testing.T) {
		summary, err := source.DaySummary(ctx, userID, mustDate(t, "2026-08-01"))
		require.NoError(t, err)
		assert.Equal(t, domain.DaySummary{}, summary)
	})
}
