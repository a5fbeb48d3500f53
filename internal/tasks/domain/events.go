package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	aggregateType           = "Task"
	additionalAggregateType = "AdditionalTask"
)

// Routing keys for task events.
const (
	RoutingKeyTaskCreated             = "tasks.task.created"
	RoutingKeyTaskCompleted           = "tasks.task.completed"
	RoutingKeyTaskReopened            = "tasks.task.reopened"
	RoutingKeyTaskRemoved             = "tasks.task.removed"
	RoutingKeyTasksReordered          = "tasks.task.reordered"
	RoutingKeyAdditionalTaskCreated   = "tasks.additional.created"
	RoutingKeyAdditionalTaskCompleted = "tasks.additional.completed"
)

// TaskCreated is emitted when a daily task is created.
type TaskCreated struct {
	sharedDomain.BaseEvent
	TaskID   uuid.UUID `json:"task_id"`
	UserID   uuid.UUID `json:"user_id"`
	Title    string    `json:"title"`
	Priority int       `json:"priority"`
	Date     string    `json:"date"`
	Category string    `json:"category"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(t *Task) *TaskCreated {
	return &TaskCreated{
		BaseEvent: sharedDomain.NewBaseEvent(t.ID(), aggregateType, RoutingKeyTaskCreated),
		TaskID:    t.ID(),
		UserID:    t.UserID(),
		Title:     t.Title(),
		Priority:  t.Priority(),
		Date:      t.Date().String(),
		Category:  string(t.Category()),
	}
}

// TaskCompleted is emitted when a task is toggled to done.
type TaskCompleted struct {
	sharedDomain.BaseEvent
	TaskID      uuid.UUID `json:"task_id"`
	UserID      uuid.UUID `json:"user_id"`
	Date        string    `json:"date"`
	Category    string    `json:"category"`
	CompletedAt time.Time `json:"completed_at"`
}

// NewTaskCompleted creates a TaskCompleted event.
func NewTaskCompleted(t *Task, completedAt time.Time) *TaskCompleted {
	return &TaskCompleted{
		BaseEvent:   sharedDomain.NewBaseEvent(t.ID(), aggregateType, RoutingKeyTaskCompleted),
		TaskID:      t.ID(),
		UserID:      t.UserID(),
		Date:        t.Date().String(),
		Category:    string(t.Category()),
		CompletedAt: completedAt,
	}
}

// TaskReopened is emitted when a completed task is toggled back to open.
type TaskReopened struct {
	sharedDomain.BaseEvent
	TaskID uuid.UUID `json:"task_id"`
	UserID uuid.UUID `json:"user_id"`
	Date   string    `json:"date"`
}

// NewTaskReopened creates a TaskReopened event.
func NewTaskReopened(t *Task) *TaskReopened {
	return &TaskReopened{
		BaseEvent: sharedDomain.NewBaseEvent(t.ID(), aggregateType, RoutingKeyTaskReopened),
		TaskID:    t.ID(),
		UserID:    t.UserID(),
		Date:      t.Date().String(),
	}
}

// TaskRemoved is emitted when a task is removed from the day.
type TaskRemoved struct {
	sharedDomain.BaseEvent
	TaskID   uuid.UUID `json:"task_id"`
	UserID   uuid.UUID `json:"user_id"`
	Date     string    `json:"date"`
	Priority int       `json:"priority"`
}

// NewTaskRemoved creates a TaskRemoved event.
func NewTaskRemoved(t *Task) *TaskRemoved {
	return &TaskRemoved{
		BaseEvent: sharedDomain.NewBaseEvent(t.ID(), aggregateType, RoutingKeyTaskRemoved),
		TaskID:    t.ID(),
		UserID:    t.UserID(),
		Date:      t.Date().String(),
		Priority:  t.Priority(),
	}
}

// TasksReordered is emitted once per successful reorder of a day.
type TasksReordered struct {
	sharedDomain.BaseEvent
	UserID    uuid.UUID   `json:"user_id"`
	Date      string      `json:"date"`
	TaskOrder []uuid.UUID `json:"task_order"`
}

// NewTasksReordered creates a TasksReordered event. The moved task
// serves as the aggregate the event is attached to.
func NewTasksReordered(moved *Task, order []uuid.UUID) *TasksReordered {
	return &TasksReordered{
		BaseEvent: sharedDomain.NewBaseEvent(moved.ID(), aggregateType, RoutingKeyTasksReordered),
		UserID:    moved.UserID(),
		Date:      moved.Date().String(),
		TaskOrder: order,
	}
}

// AdditionalTaskCreated is emitted when a bonus task is created.
type AdditionalTaskCreated struct {
	sharedDomain.BaseEvent
	TaskID uuid.UUID `json:"task_id"`
	UserID uuid.UUID `json:"user_id"`
	Title  string    `json:"title"`
	Date   string    `json:"date"`
}

// NewAdditionalTaskCreated creates an AdditionalTaskCreated event.
func NewAdditionalTaskCreated(t *AdditionalTask) *AdditionalTaskCreated {
	return &AdditionalTaskCreated{
		BaseEvent: sharedDomain.NewBaseEvent(t.ID(), additionalAggregateType, "tasks.additional.created"),
		TaskID:    t.ID(),
		UserID:    t.UserID(),
		Title:     t.Title(),
		Date:      t.Date().String(),
	}
}

// AdditionalTaskCompleted is emitted when a bonus task is toggled to done.
type AdditionalTaskCompleted struct {
	sharedDomain.BaseEvent
	TaskID uuid.UUID `json:"task_id"`
	UserID uuid.UUID `json:"user_id"`
	Date   string    `json:"date"`
}

// NewAdditionalTaskCompleted creates an AdditionalTaskCompleted event.
func NewAdditionalTaskCompleted(t *AdditionalTask) *AdditionalTaskCompleted {
	return &AdditionalTaskCompleted{
		BaseEvent: sharedDomain.NewBaseEvent(t.ID(), additionalAggregateType, "tasks.additional.completed"),
		TaskID:    t.ID(),
		UserID:    t.UserID(),
		Date:      t.Date().String(),
	}
}
