package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/focusfive/internal/identity/domain"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/database"
)

// PostgresSettingsRepository implements domain.SettingsRepository using PostgreSQL.
type PostgresSettingsRepository struct {
	conn database.Connection
}

// NewPostgresSettingsRepository creates a new Postgres settings repository.
func NewPostgresSettingsRepository(conn database.Connection) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{conn: conn}
}

const postgresUpsertSettings = `
	INSERT INTO user_settings (
		id, user_id, dark_mode, daily_goal, weekly_goal, sound_enabled,
		reset_time, timezone, version, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT(user_id) DO UPDATE SET
		dark_mode = EXCLUDED.dark_mode,
		daily_goal = EXCLUDED.daily_goal,
		weekly_goal = EXCLUDED.weekly_goal,
		sound_enabled = EXCLUDED.sound_enabled,
		reset_time = EXCLUDED.reset_time,
		timezone = EXCLUDED.timezone,
		version = user_settings.version + 1,
		updated_at = NOW()
`

// Save persists settings (create or update).
func (r *PostgresSettingsRepository) Save(ctx context.Context, settings *domain.UserSettings) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, postgresUpsertSettings,
		settings.ID(),
		settings.UserID(),
		settings.DarkMode(),
		settings.DailyGoal(),
		settings.WeeklyGoal(),
		settings.SoundEnabled(),
		settings.ResetTime(),
		settings.Timezone(),
		settings.Version()+1,
		settings.CreatedAt(),
		settings.UpdatedAt(),
	)
	return err
}

// FindByUserID finds settings for a user, or nil when none exist.
func (r *PostgresSettingsRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := exec.QueryRow(ctx, `
		SELECT id, user_id, dark_mode, daily_goal, weekly_goal, sound_enabled,
		       reset_time, timezone, version, created_at, updated_at
		FROM user_settings WHERE user_id = $1`,
		userID)

	var (
		id           uuid.UUID
		owner        uuid.UUID
		darkMode     bool
		dailyGoal    int
		weeklyGoal   int
		soundEnabled bool
		resetTime    string
		timezone     string
		version      int
		createdAt    time.Time
		updatedAt    time.Time
	)
	err := row.Scan(&id, &owner, &darkMode, &dailyGoal, &weeklyGoal,
		&soundEnabled, &resetTime, &timezone, &version, &createdAt, &updatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	return domain.RehydrateUserSettings(
		id, owner,
		darkMode,
		dailyGoal, weeklyGoal,
		soundEnabled,
		resetTime, timezone,
		version, createdAt, updatedAt,
	), nil
}
