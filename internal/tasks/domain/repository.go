package domain

import (
	"context"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/google/uuid"
)

// Repository defines the interface for daily task persistence.
type Repository interface {
	// Save persists a task (create or update).
	Save(ctx context.Context, task *Task) error

	// SaveAll persists multiple tasks. Callers wrap this in a unit of
	// work so a reorder either applies to every task or to none.
	SaveAll(ctx context.Context, tasks []*Task) error

	// FindByID finds a task by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)

	// FindByUserAndDate finds a user's tasks for one day, ordered by
	// priority ascending.
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date sharedDomain.Date) ([]*Task, error)

	// CountByUserAndDate counts a user's tasks for one day.
	CountByUserAndDate(ctx context.Context, userID uuid.UUID, date sharedDomain.Date) (int, error)

	// CompletedHistory returns the user's completed tasks ordered by
	// date descending, capped at limit.
	CompletedHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*Task, error)

	// CompletedSince counts completed tasks on or after the given date.
	CompletedSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Date) (int, error)

	// Delete removes a task.
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdditionalRepository defines the interface for bonus task persistence.
type AdditionalRepository interface {
	// Save persists a bonus task (create or update).
	Save(ctx context.Context, task *AdditionalTask) error

	// FindByID finds a bonus task by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*AdditionalTask, error)

	// FindByUserAndDate finds a user's bonus tasks for one day, ordered
	// by creation time ascending.
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date sharedDomain.Date) ([]*AdditionalTask, error)

	// Delete removes a bonus task.
	Delete(ctx context.Context, id uuid.UUID) error
}
