package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserSettings(t *testing.T) {
	userID := uuid.New()

	t.Run("creates with defaults and emits event", func(t *testing.T) {
		settings, err := NewUserSettings(userID, 5, 35)
		require.NoError(t, err)

		assert.Equal(t, userID, settings.UserID())
		assert.False(t, settings.DarkMode())
		assert.Equal(t, 5, settings.DailyGoal())
		assert.Equal(t, 35, settings.WeeklyGoal())
		assert.True(t, settings.SoundEnabled())
		assert.Equal(t, DefaultResetTime, settings.ResetTime())
		assert.Equal(t, DefaultTimezone, settings.Timezone())

		events := settings.DomainEvents()
		require.Len(t, events, 1)
		created, ok := events[0].(SettingsCreated)
		require.True(t, ok)
		assert.Equal(t, 5, created.DailyGoal)
	})

	t.Run("rejects nil user", func(t *testing.T) {
		_, err := NewUserSettings(uuid.Nil, 5, 35)
		assert.ErrorIs(t, err, ErrSettingsInvalidUser)
	})

	t.Run("rejects out of range daily goal", func(t *testing.T) {
		_, err := NewUserSettings(userID, 0, 35)
		assert.ErrorIs(t, err, ErrSettingsInvalidDailyGoal)

		_, err = NewUserSettings(userID, 11, 35)
		assert.ErrorIs(t, err, ErrSettingsInvalidDailyGoal)
	})

	t.Run("rejects non-positive weekly goal", func(t *testing.T) {
		_, err := NewUserSettings(userID, 5, 0)
		assert.ErrorIs(t, err, ErrSettingsInvalidWeeklyGoal)
	})
}

func TestUserSettings_Setters(t *testing.T) {
	newSettings := func(t *testing.T) *UserSettings {
		t.Helper()
		settings, err := NewUserSettings(uuid.New(), 5, 35)
		require.NoError(t, err)
		return settings
	}

	t.Run("daily goal bounds", func(t *testing.T) {
		settings := newSettings(t)
		require.NoError(t, settings.SetDailyGoal(10))
		assert.Equal(t, 10, settings.DailyGoal())
		assert.ErrorIs(t, settings.SetDailyGoal(11), ErrSettingsInvalidDailyGoal)
		assert.ErrorIs(t, settings.SetDailyGoal(0), ErrSettingsInvalidDailyGoal)
	})

	t.Run("reset time format", func(t *testing.T) {
		settings := newSettings(t)
		require.NoError(t, settings.SetResetTime("04:30"))
		assert.Equal(t, "04:30", settings.ResetTime())

		assert.ErrorIs(t, settings.SetResetTime("24:00"), ErrSettingsInvalidResetTime)
		assert.ErrorIs(t, settings.SetResetTime("4:30"), ErrSettingsInvalidResetTime)
		assert.ErrorIs(t, settings.SetResetTime("04:60"), ErrSettingsInvalidResetTime)
		assert.ErrorIs(t, settings.SetResetTime(""), ErrSettingsInvalidResetTime)
	})

	t.Run("timezone must resolve", func(t *testing.T) {
		settings := newSettings(t)
		require.NoError(t, settings.SetTimezone("Europe/Berlin"))
		assert.Equal(t, "Europe/Berlin", settings.Timezone())
		assert.ErrorIs(t, settings.SetTimezone("Mars/Olympus"), ErrSettingsInvalidTimezone)
	})

	t.Run("dark mode toggle", func(t *testing.T) {
		settings := newSettings(t)
		settings.SetDarkMode(true)
		assert.True(t, settings.DarkMode())
	})
}

func TestRehydrateUserSettings(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()
	now := time.Now()

	settings := RehydrateUserSettings(id, userID, true, 7, 40, false, "06:00", "America/New_York", 3, now, now)

	assert.Equal(t, id, settings.ID())
	assert.Equal(t, userID, settings.UserID())
	assert.True(t, settings.DarkMode())
	assert.Equal(t, 7, settings.DailyGoal())
	assert.Equal(t, 40, settings.WeeklyGoal())
	assert.False(t, settings.SoundEnabled())
	assert.Equal(t, "06:00", settings.ResetTime())
	assert.Equal(t, "America/New_York", settings.Timezone())
	assert.Equal(t, 3, settings.Version())
	assert.Empty(t, settings.DomainEvents())
}
