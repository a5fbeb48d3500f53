package domain

import (
	"context"

	"github.com/google/uuid"
)

// SettingsRepository defines storage for user settings.
type SettingsRepository interface {
	// Save persists settings, creating or updating the single row for
	// the owning user.
	Save(ctx context.Context, settings *UserSettings) error

	// FindByUserID returns the user's settings, or nil when none exist.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*UserSettings, error)
}
