package domain

import (
	"testing"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) sharedDomain.Date {
	t.Helper()
	d, err := sharedDomain.NewDate(s)
	require.NoError(t, err)
	return d
}

func TestNewTask(t *testing.T) {
	userID := uuid.New()
	date := mustDate(t, "2026-08-30")

	task, err := NewTask(userID, "Write quarterly report", 1, date)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, task.ID())
	assert.Equal(t, userID, task.UserID())
	assert.Equal(t, "Write quarterly report", task.Title())
	assert.Equal(t, 1, task.Priority())
	assert.False(t, task.IsCompleted())
	assert.Equal(t, date, task.Date())
	assert.Equal(t, CategoryGeneral, task.Category())
	assert.Equal(t, EnergyMedium, task.EnergyLevel())
	assert.Equal(t, 0, task.EstimatedMinutes())
	assert.Equal(t, 0, task.ActualMinutes())
}

func TestNewTask_EmitsEvent(t *testing.T) {
	userID := uuid.New()
	task, err := NewTask(userID, "Review PRs", 2, mustDate(t, "2026-08-30"))

	require.NoError(t, err)
	events := task.DomainEvents()
	require.Len(t, events, 1)

	created, ok := events[0].(*TaskCreated)
	require.True(t, ok)
	assert.Equal(t, task.ID(), created.TaskID)
	assert.Equal(t, "Review PRs", created.Title)
	assert.Equal(t, 2, created.Priority)
	assert.Equal(t, "2026-08-30", created.Date)
}

func TestNewTask_EmptyTitle(t *testing.T) {
	userID := uuid.New()
	date := mustDate(t, "2026-08-30")

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := NewTask(userID, title, 1, date)
		assert.ErrorIs(t, err, ErrTaskEmptyTitle)
	}
}

func TestNewTask_InvalidPriority(t *testing.T) {
	_, err := NewTask(uuid.New(), "Test", 0, mustDate(t, "2026-08-30"))
	assert.ErrorIs(t, err, ErrTaskInvalidPriority)

	_, err = NewTask(uuid.New(), "Test", -1, mustDate(t, "2026-08-30"))
	assert.ErrorIs(t, err, ErrTaskInvalidPriority)
}

func TestNewTask_ZeroDate(t *testing.T) {
	_, err := NewTask(uuid.New(), "Test", 1, sharedDomain.Date{})
	assert.ErrorIs(t, err, ErrTaskInvalidDate)
}

func TestTask_Toggle(t *testing.T) {
	task, _ := NewTask(uuid.New(), "Test", 1, mustDate(t, "2026-08-30"))
	task.ClearDomainEvents()

	now := time.Now()
	completed := task.Toggle(now)
	assert.True(t, completed)
	assert.True(t, task.IsCompleted())

	events := task.DomainEvents()
	require.Len(t, events, 1)
	done, ok := events[0].(*TaskCompleted)
	require.True(t, ok)
	assert.Equal(t, task.ID(), done.TaskID)

	task.ClearDomainEvents()
	completed = task.Toggle(now)
	assert.False(t, completed)
	assert.False(t, task.IsCompleted())

	events = task.DomainEvents()
	require.Len(t, events, 1)
	_, ok = events[0].(*TaskReopened)
	assert.True(t, ok)
}

func TestTask_SetCategory(t *testing.T) {
	task, _ := NewTask(uuid.New(), "Test", 1, mustDate(t, "2026-08-30"))

	require.NoError(t, task.SetCategory(CategoryHealth))
	assert.Equal(t, CategoryHealth, task.Category())

	err := task.SetCategory(Category("chores"))
	assert.ErrorIs(t, err, ErrTaskInvalidCategory)
	assert.Equal(t, CategoryHealth, task.Category())
}

func TestTask_SetEnergyLevel(t *testing.T) {
	task, _ := NewTask(uuid.New(), "Test", 1, mustDate(t, "2026-08-30"))

	require.NoError(t, task.SetEnergyLevel(EnergyHigh))
	assert.Equal(t, EnergyHigh, task.EnergyLevel())

	err := task.SetEnergyLevel(EnergyLevel("extreme"))
	assert.ErrorIs(t, err, ErrTaskInvalidEnergy)
}

func TestTask_SetMinutes(t *testing.T) {
	task, _ := NewTask(uuid.New(), "Test", 1, mustDate(t, "2026-08-30"))

	require.NoError(t, task.SetEstimatedMinutes(45))
	assert.Equal(t, 45, task.EstimatedMinutes())
	assert.ErrorIs(t, task.SetEstimatedMinutes(-1), ErrTaskInvalidEstimate)

	require.NoError(t, task.SetActualMinutes(60))
	assert.Equal(t, 60, task.ActualMinutes())
	assert.ErrorIs(t, task.SetActualMinutes(-5), ErrTaskInvalidActual)
}

func TestTask_SetPriority(t *testing.T) {
	task, _ := NewTask(uuid.New(), "Test", 3, mustDate(t, "2026-08-30"))

	require.NoError(t, task.SetPriority(1))
	assert.Equal(t, 1, task.Priority())

	assert.ErrorIs(t, task.SetPriority(0), ErrTaskInvalidPriority)
	assert.Equal(t, 1, task.Priority())
}

func TestTask_EstimationAccuracy(t *testing.T) {
	tests := []struct {
		name      string
		estimated int
		actual    int
		want      float64
		ok        bool
	}{
		{"exact estimate", 30, 30, 1.0, true},
		{"under by half", 30, 45, 0.5, true},
		{"over by half", 30, 15, 0.5, true},
		{"way off clamps to zero", 30, 120, 0.0, true},
		{"no estimate", 0, 45, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			task, _ := NewTask(uuid.New(), "Test", 1, mustDate(t, "2026-08-30"))
			require.NoError(t, task.SetEstimatedMinutes(tc.estimated))
			require.NoError(t, task.SetActualMinutes(tc.actual))

			got, ok := task.EstimationAccuracy()
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.InDelta(t, tc.want, got, 0.0001)
			}
		})
	}
}

func TestRehydrateTask(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()
	date := mustDate(t, "2026-08-29")
	createdAt := time.Now().Add(-24 * time.Hour)
	updatedAt := time.Now()

	task := RehydrateTask(id, userID, "Restored", 2, true, date,
		CategoryWork, EnergyLow, 30, 25, 3, createdAt, updatedAt)

	assert.Equal(t, id, task.ID())
	assert.Equal(t, userID, task.UserID())
	assert.Equal(t, "Restored", task.Title())
	assert.Equal(t, 2, task.Priority())
	assert.True(t, task.IsCompleted())
	assert.Equal(t, CategoryWork, task.Category())
	assert.Equal(t, 3, task.Version())
	assert.Empty(t, task.DomainEvents())
}

func TestNewAdditionalTask(t *testing.T) {
	userID := uuid.New()
	date := mustDate(t, "2026-08-30")

	task, err := NewAdditionalTask(userID, "Water plants", date)

	require.NoError(t, err)
	assert.Equal(t, "Water plants", task.Title())
	assert.False(t, task.IsCompleted())
	assert.Equal(t, date, task.Date())

	events := task.DomainEvents()
	require.Len(t, events, 1)
	_, ok := events[0].(*AdditionalTaskCreated)
	assert.True(t, ok)
}

func TestAdditionalTask_Toggle(t *testing.T) {
	task, _ := NewAdditionalTask(uuid.New(), "Water plants", mustDate(t, "2026-08-30"))
	task.ClearDomainEvents()

	assert.True(t, task.Toggle())
	events := task.DomainEvents()
	require.Len(t, events, 1)
	_, ok := events[0].(*AdditionalTaskCompleted)
	assert.True(t, ok)

	task.ClearDomainEvents()
	assert.False(t, task.Toggle())
	assert.Empty(t, task.DomainEvents())
}

func TestCategory_IsValid(t *testing.T) {
	valid := []Category{CategoryWork, CategoryPersonal, CategoryHealth, CategoryLearning, CategoryCreative, CategoryGeneral}
	for _, c := range valid {
		assert.True(t, c.IsValid(), string(c))
	}
	assert.False(t, Category("errands").IsValid())
	assert.False(t, Category("").IsValid())
}
