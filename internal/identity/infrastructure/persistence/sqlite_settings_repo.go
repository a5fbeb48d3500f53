package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/focusfive/internal/identity/domain"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/database"
)

// SQLiteSettingsRepository implements domain.SettingsRepository using SQLite.
type SQLiteSettingsRepository struct {
	conn database.Connection
}

// NewSQLiteSettingsRepository creates a new SQLite settings repository.
func NewSQLiteSettingsRepository(conn database.Connection) *SQLiteSettingsRepository {
	return &SQLiteSettingsRepository{conn: conn}
}

const sqliteUpsertSettings = `
	INSERT INTO user_settings (
		id, user_id, dark_mode, daily_goal, weekly_goal, sound_enabled,
		reset_time, timezone, version, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		dark_mode = excluded.dark_mode,
		daily_goal = excluded.daily_goal,
		weekly_goal = excluded.weekly_goal,
		sound_enabled = excluded.sound_enabled,
		reset_time = excluded.reset_time,
		timezone = excluded.timezone,
		version = user_settings.version + 1,
		updated_at = excluded.updated_at
`

// Save persists settings (create or update). The conflict target is the
// user, so concurrent first-access creates collapse into one row.
func (r *SQLiteSettingsRepository) Save(ctx context.Context, settings *domain.UserSettings) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, sqliteUpsertSettings,
		settings.ID().String(),
		settings.UserID().String(),
		boolToInt(settings.DarkMode()),
		settings.DailyGoal(),
		settings.WeeklyGoal(),
		boolToInt(settings.SoundEnabled()),
		settings.ResetTime(),
		settings.Timezone(),
		settings.Version()+1,
		settings.CreatedAt().UTC().Format(time.RFC3339),
		settings.UpdatedAt().UTC().Format(time.RFC3339),
	)
	return err
}

// FindByUserID finds settings for a user, or nil when none exist.
func (r *SQLiteSettingsRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := exec.QueryRow(ctx, `
		SELECT id, user_id, dark_mode, daily_goal, weekly_goal, sound_enabled,
		       reset_time, timezone, version, created_at, updated_at
		FROM user_settings WHERE user_id = ?`,
		userID.String())

	var (
		idStr        string
		userIDStr    string
		darkMode     int
		dailyGoal    int
		weeklyGoal   int
		soundEnabled int
		resetTime    string
		timezone     string
		version      int
		createdAtStr string
		updatedAtStr string
	)
	err := row.Scan(&idStr, &userIDStr, &darkMode, &dailyGoal, &weeklyGoal,
		&soundEnabled, &resetTime, &timezone, &version, &createdAtStr, &updatedAtStr)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	owner, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateUserSettings(
		id, owner,
		darkMode != 0,
		dailyGoal, weeklyGoal,
		soundEnabled != 0,
		resetTime, timezone,
		version, createdAt, updatedAt,
	), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
