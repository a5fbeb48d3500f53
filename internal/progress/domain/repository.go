package domain

import (
	"context"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/google/uuid"
)

// Repository defines the interface for badge persistence.
type Repository interface {
	// Save persists a badge. Implementations enforce the one badge per
	// user and type constraint.
	Save(ctx context.Context, badge *Badge) error

	// FindByUser returns a user's badges ordered by when they were earned.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*Badge, error)

	// TypesByUser returns the set of badge types the user already holds.
	TypesByUser(ctx context.Context, userID uuid.UUID) (map[BadgeType]bool, error)
}

// CompletionSource is the read side of the task store this context
// needs: which days have at least one completed task, and how many
// tasks were completed inside a window.
type CompletionSource interface {
	// CompletionDates returns the distinct dates with at least one
	// completed task, newest first, capped at limit.
	CompletionDates(ctx context.Context, userID uuid.UUID, limit int) ([]sharedDomain.Date, error)

	// CompletedSince counts completed tasks on or after the given date.
	CompletedSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Date) (int, error)
}

// WeeklyGoalSource supplies the user's weekly completion target.
type WeeklyGoalSource interface {
	WeeklyGoal(ctx context.Context, userID uuid.UUID) (int, error)
}
