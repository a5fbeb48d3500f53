package domain

import (
	"errors"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrTaskEmptyTitle       = errors.New("task title cannot be empty")
	ErrTaskInvalidCategory  = errors.New("invalid task category")
	ErrTaskInvalidEnergy    = errors.New("invalid energy level")
	ErrTaskInvalidPriority  = errors.New("priority must be positive")
	ErrTaskInvalidEstimate  = errors.New("estimated minutes cannot be negative")
	ErrTaskInvalidActual    = errors.New("actual minutes cannot be negative")
	ErrTaskInvalidDate      = errors.New("task date is required")
	ErrDailyCapacityReached = errors.New("daily task capacity reached")
)

// Category classifies what area of life a task belongs to.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryLearning Category = "learning"
	CategoryCreative Category = "creative"
	CategoryGeneral  Category = "general"
)

// IsValid checks if the category is valid.
func (c Category) IsValid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryHealth, CategoryLearning, CategoryCreative, CategoryGeneral:
		return true
	default:
		return false
	}
}

// EnergyLevel represents how demanding a task is expected to be.
type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

// IsValid checks if the energy level is valid.
func (e EnergyLevel) IsValid() bool {
	switch e {
	case EnergyLow, EnergyMedium, EnergyHigh:
		return true
	default:
		return false
	}
}

// DefaultDailyTasks is the daily task limit used until the user
// configures their own goal.
const DefaultDailyTasks = 5

// Task is one of a user's prioritized tasks for a single day.
type Task struct {
	sharedDomain.BaseAggregateRoot
	userID           uuid.UUID
	title            string
	priority         int
	completed        bool
	date             sharedDomain.Date
	category         Category
	energyLevel      EnergyLevel
	estimatedMinutes int
	actualMinutes    int
}

// NewTask creates a new daily task at the given priority position.
func NewTask(userID uuid.UUID, title string, priority int, date sharedDomain.Date) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTaskEmptyTitle
	}
	if priority < 1 {
		return nil, ErrTaskInvalidPriority
	}
	if date.IsZero() {
		return nil, ErrTaskInvalidDate
	}

	task := &Task{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		title:             title,
		priority:          priority,
		completed:         false,
		date:              date,
		category:          CategoryGeneral,
		energyLevel:       EnergyMedium,
	}

	task.AddDomainEvent(NewTaskCreated(task))

	return task, nil
}

// Getters
func (t *Task) UserID() uuid.UUID        { return t.userID }
func (t *Task) Title() string            { return t.title }
func (t *Task) Priority() int            { return t.priority }
func (t *Task) IsCompleted() bool        { return t.completed }
func (t *Task) Date() sharedDomain.Date  { return t.date }
func (t *Task) Category() Category       { return t.category }
func (t *Task) EnergyLevel() EnergyLevel { return t.energyLevel }
func (t *Task) EstimatedMinutes() int    { return t.estimatedMinutes }
func (t *Task) ActualMinutes() int       { return t.actualMinutes }

// SetTitle updates the task title.
func (t *Task) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTaskEmptyTitle
	}
	t.title = title
	t.Touch()
	return nil
}

// SetCategory updates the task category.
func (t *Task) SetCategory(c Category) error {
	if !c.IsValid() {
		return ErrTaskInvalidCategory
	}
	t.category = c
	t.Touch()
	return nil
}

// SetEnergyLevel updates the expected energy level.
func (t *Task) SetEnergyLevel(e EnergyLevel) error {
	if !e.IsValid() {
		return ErrTaskInvalidEnergy
	}
	t.energyLevel = e
	t.Touch()
	return nil
}

// SetEstimatedMinutes updates the time estimate.
func (t *Task) SetEstimatedMinutes(minutes int) error {
	if minutes < 0 {
		return ErrTaskInvalidEstimate
	}
	t.estimatedMinutes = minutes
	t.Touch()
	return nil
}

// SetActualMinutes records how long the task actually took.
func (t *Task) SetActualMinutes(minutes int) error {
	if minutes < 0 {
		return ErrTaskInvalidActual
	}
	t.actualMinutes = minutes
	t.Touch()
	return nil
}

// SetPriority moves the task to a new priority position. Callers are
// responsible for keeping priorities contiguous across the day.
func (t *Task) SetPriority(priority int) error {
	if priority < 1 {
		return ErrTaskInvalidPriority
	}
	if t.priority == priority {
		return nil
	}
	t.priority = priority
	t.Touch()
	return nil
}

// Toggle flips the completion state and returns the new state.
func (t *Task) Toggle(now time.Time) bool {
	t.completed = !t.completed
	t.Touch()
	if t.completed {
		t.AddDomainEvent(NewTaskCompleted(t, now))
	} else {
		t.AddDomainEvent(NewTaskReopened(t))
	}
	return t.completed
}

// MarkRemoved emits the removal event. The repository performs the delete.
func (t *Task) MarkRemoved() {
	t.AddDomainEvent(NewTaskRemoved(t))
}

// EstimationAccuracy returns how close the estimate was to the actual
// time spent, as a ratio in [0, 1]. A second return of false means no
// usable estimate exists.
func (t *Task) EstimationAccuracy() (float64, bool) {
	if t.estimatedMinutes <= 0 {
		return 0, false
	}
	diff := float64(t.estimatedMinutes - t.actualMinutes)
	if diff < 0 {
		diff = -diff
	}
	accuracy := 1 - diff/float64(t.estimatedMinutes)
	if accuracy < 0 {
		accuracy = 0
	}
	return accuracy, true
}

// RehydrateTask recreates a task from persisted state without generating events.
func RehydrateTask(
	id uuid.UUID,
	userID uuid.UUID,
	title string,
	priority int,
	completed bool,
	date sharedDomain.Date,
	category Category,
	energyLevel EnergyLevel,
	estimatedMinutes int,
	actualMinutes int,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) *Task {
	baseEntity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	baseAggregate := sharedDomain.RehydrateBaseAggregateRoot(baseEntity, version)

	return &Task{
		BaseAggregateRoot: baseAggregate,
		userID:            userID,
		title:             title,
		priority:          priority,
		completed:         completed,
		date:              date,
		category:          category,
		energyLevel:       energyLevel,
		estimatedMinutes:  estimatedMinutes,
		actualMinutes:     actualMinutes,
	}
}
