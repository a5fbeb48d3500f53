package domain

import (
	"github.com/google/uuid"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
)

const (
	aggregateType = "UserSettings"

	RoutingKeySettingsCreated = "identity.settings.created"
	RoutingKeySettingsUpdated = "identity.settings.updated"
)

// SettingsCreated is emitted when a user's settings row is first created.
type SettingsCreated struct {
	sharedDomain.BaseEvent
	UserID     uuid.UUID `json:"user_id"`
	DailyGoal  int       `json:"daily_goal"`
	WeeklyGoal int       `json:"weekly_goal"`
}

// NewSettingsCreated creates a SettingsCreated event.
func NewSettingsCreated(settingsID, userID uuid.UUID, dailyGoal, weeklyGoal int) SettingsCreated {
	return SettingsCreated{
		BaseEvent:  sharedDomain.NewBaseEvent(settingsID, aggregateType, RoutingKeySettingsCreated),
		UserID:     userID,
		DailyGoal:  dailyGoal,
		WeeklyGoal: weeklyGoal,
	}
}

// SettingsUpdated is emitted after a settings patch, carrying the full
// resulting state.
type SettingsUpdated struct {
	sharedDomain.BaseEvent
	UserID       uuid.UUID `json:"user_id"`
	DarkMode     bool      `json:"dark_mode"`
	DailyGoal    int       `json:"daily_goal"`
	WeeklyGoal   int       `json:"weekly_goal"`
	SoundEnabled bool      `json:"sound_enabled"`
	ResetTime    string    `json:"reset_time"`
	Timezone     string    `json:"timezone"`
}

// NewSettingsUpdated creates a SettingsUpdated event from current state.
func NewSettingsUpdated(settings *UserSettings) SettingsUpdated {
	return SettingsUpdated{
		BaseEvent:    sharedDomain.NewBaseEvent(settings.ID(), aggregateType, RoutingKeySettingsUpdated),
		UserID:       settings.UserID(),
		DarkMode:     settings.DarkMode(),
		DailyGoal:    settings.DailyGoal(),
		WeeklyGoal:   settings.WeeklyGoal(),
		SoundEnabled: settings.SoundEnabled(),
		ResetTime:    settings.ResetTime(),
		Timezone:     settings.Timezone(),
	}
}
