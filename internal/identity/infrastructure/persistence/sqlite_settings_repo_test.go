package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/focusfive/internal/identity/domain"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/migrations"
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

func TestSQLiteSettingsRepository(t *testing.T) {
	conn := setupSQLite(t)
	repo := NewSQLiteSettingsRepository(conn)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("missing settings return nil", func(t *testing.T) {
		found, err := repo.FindByUserID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("save and find roundtrip", func(t *testing.T) {
		settings, err := domain.NewUserSettings(userID, 5, 35)
		require.NoError(t, err)
		settings.SetDarkMode(true)
		require.NoError(t, settings.SetResetTime("04:30"))
		require.NoError(t, repo.Save(ctx, settings))

		found, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, settings.ID(), found.ID())
		assert.True(t, found.DarkMode())
		assert.Equal(t, 5, found.DailyGoal())
		assert.Equal(t, 35, found.WeeklyGoal())
		assert.True(t, found.SoundEnabled())
		assert.Equal(t, "04:30", found.ResetTime())
		assert.Equal(t, "UTC", found.Timezone())
		assert.Equal(t, 1, found.Version())
	})

	t.Run("update bumps version", func(t *testing.T) {
		found, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, found)

		require.NoError(t, found.SetDailyGoal(8))
		require.NoError(t, repo.Save(ctx, found))

		updated, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 8, updated.DailyGoal())
		assert.Equal(t, 2, updated.Version())
	})

	t.Run("one row per user", func(t *testing.T) {
		// A second aggregate for the same user collapses into the
		// existing row via the user_id conflict target.
		duplicate, err := domain.NewUserSettings(userID, 3, 21)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, duplicate))

		found, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 3, found.DailyGoal())
		assert.Equal(t, 21, found.WeeklyGoal())
	})
}
