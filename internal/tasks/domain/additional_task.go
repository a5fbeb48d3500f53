package domain

import (
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/google/uuid"
)

// AdditionalTask is a bonus task outside the daily priority list. It has
// no priority position and the per-day count is unbounded.
type AdditionalTask struct {
	sharedDomain.BaseAggregateRoot
	userID    uuid.UUID
	title     string
	completed bool
	date      sharedDomain.Date
}

// NewAdditionalTask creates a new bonus task for the given day.
func NewAdditionalTask(userID uuid.UUID, title string, date sharedDomain.Date) (*AdditionalTask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTaskEmptyTitle
	}
	if date.IsZero() {
		return nil, ErrTaskInvalidDate
	}

	task := &AdditionalTask{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		title:             title,
		date:              date,
	}

	task.AddDomainEvent(NewAdditionalTaskCreated(task))

	return task, nil
}

// Getters
func (t *AdditionalTask) UserID() uuid.UUID       { return t.userID }
func (t *AdditionalTask) Title() string           { return t.title }
func (t *AdditionalTask) IsCompleted() bool       { return t.completed }
func (t *AdditionalTask) Date() sharedDomain.Date { return t.date }

// Toggle flips the completion state and returns the new state.
func (t *AdditionalTask) Toggle() bool {
	t.completed = !t.completed
	t.Touch()
	if t.completed {
		t.AddDomainEvent(NewAdditionalTaskCompleted(t))
	}
	return t.completed
}

// RehydrateAdditionalTask recreates a bonus task from persisted state
// without generating events.
func RehydrateAdditionalTask(
	id uuid.UUID,
	userID uuid.UUID,
	title string,
	completed bool,
	date sharedDomain.Date,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) *AdditionalTask {
	baseEntity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	baseAggregate := sharedDomain.RehydrateBaseAggregateRoot(baseEntity, version)

	return &AdditionalTask{
		BaseAggregateRoot: baseAggregate,
		userID:            userID,
		title:             title,
		completed:         completed,
		date:              date,
	}
}
