package queries

import (
	"context"
	"testing"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/felixgeelhaar/focusfive/internal/tasks/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockTaskRepo is a mock implementation of domain.Repository.
type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *mockTaskRepo) SaveAll(ctx context.Context, tasks []*domain.Task) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTaskRepo) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date sharedDomain.Date) ([]*domain.Task, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *mockTaskRepo) CountByUserAndDate(ctx context.Context, userID uuid.UUID, date sharedDomain.Date) (int, error) {
	args := m.Called(ctx, userID, date)
	return args.Int(0), args.Error(1)
}

func (m *mockTaskRepo) CompletedHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Task, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *mockTaskRepo) CompletedSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Date) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// stubLimitSource returns a fixed daily goal.
type stubLimitSource struct {
	limit int
}

func (s stubLimitSource) DailyGoal(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.limit, nil
}

func testDate(t *testing.T) sharedDomain.Date {
	t.Helper()
	d, err := sharedDomain.NewDate("2026-08-30")
	require.NoError(t, err)
	return d
}

func TestListDayTasksHandler_Handle(t *testing.T) {
	userID := uuid.New()
	date := testDate(t)
	ctx := context.Background()

	t.Run("returns tasks with completion counts", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewListDayTasksHandler(repo, stubLimitSource{limit: 5})

		taskA, err := domain.NewTask(userID, "A", 1, date)
		require.NoError(t, err)
		taskB, err := domain.NewTask(userID, "B", 2, date)
		require.NoError(t, err)
		taskA.Toggle(taskA.CreatedAt())

		repo.On("FindByUserAndDate", ctx, userID, date).Return([]*domain.Task{taskA, taskB}, nil)

		result, err := handler.Handle(ctx, ListDayTasksQuery{UserID: userID, Date: date})

		require.NoError(t, err)
		require.Len(t, result.Tasks, 2)
		assert.Equal(t, 1, result.CompletedCount)
		assert.Equal(t, 3, result.Remaining)
		assert.Equal(t, "A", result.Tasks[0].Title)
		assert.True(t, result.Tasks[0].Completed)
		assert.Equal(t, 1, result.Tasks[0].Priority)
	})

	t.Run("empty day", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewListDayTasksHandler(repo, stubLimitSource{limit: 5})

		repo.On("FindByUserAndDate", ctx, userID, date).Return([]*domain.Task{}, nil)

		result, err := handler.Handle(ctx, ListDayTasksQuery{UserID: userID, Date: date})

		require.NoError(t, err)
		assert.Empty(t, result.Tasks)
		assert.Equal(t, 0, result.CompletedCount)
		assert.Equal(t, 5, result.Remaining)
	})

	t.Run("remaining follows the configured goal", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewListDayTasksHandler(repo, stubLimitSource{limit: 3})

		taskA, err := domain.NewTask(userID, "A", 1, date)
		require.NoError(t, err)
		repo.On("FindByUserAndDate", ctx, userID, date).Return([]*domain.Task{taskA}, nil)

		result, err := handler.Handle(ctx, ListDayTasksQuery{UserID: userID, Date: date})

		require.NoError(t, err)
		assert.Equal(t, 2, result.Remaining)
	})

	t.Run("remaining never goes negative after a goal is lowered", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewListDayTasksHandler(repo, stubLimitSource{limit: 2})

		taskA, err := domain.NewTask(userID, "A", 1, date)
		require.NoError(t, err)
		taskB, err := domain.NewTask(userID, "B", 2, date)
		require.NoError(t, err)
		taskC, err := domain.NewTask(userID, "C", 3, date)
		require.NoError(t, err)
		repo.On("FindByUserAndDate", ctx, userID, date).Return([]*domain.Task{taskA, taskB, taskC}, nil)

		result, err := handler.Handle(ctx, ListDayTasksQuery{UserID: userID, Date: date})

		require.NoError(t, err)
		assert.Equal(t, 0, result.Remaining)
	})
}

func TestGetTaskHandler_Handle(t *testing.T) {
	userID := uuid.New()
	date := testDate(t)
	ctx := context.Background()

	t.Run("returns the task", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewGetTaskHandler(repo)

		task, err := domain.NewTask(userID, "Mine", 1, date)
		require.NoError(t, err)
		repo.On("FindByID", ctx, task.ID()).Return(task, nil)

		dto, err := handler.Handle(ctx, GetTaskQuery{TaskID: task.ID(), UserID: userID})

		require.NoError(t, err)
		assert.Equal(t, "Mine", dto.Title)
	})

	t.Run("hides another user's task", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewGetTaskHandler(repo)

		task, err := domain.NewTask(uuid.New(), "Theirs", 1, date)
		require.NoError(t, err)
		repo.On("FindByID", ctx, task.ID()).Return(task, nil)

		_, err = handler.Handle(ctx, GetTaskQuery{TaskID: task.ID(), UserID: userID})

		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestCompletedHistoryHandler_Handle(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()

	t.Run("caps the limit", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewCompletedHistoryHandler(repo)

		repo.On("CompletedHistory", ctx, userID, 100).Return([]*domain.Task{}, nil)

		_, err := handler.Handle(ctx, CompletedHistoryQuery{UserID: userID, Limit: 500})
		require.NoError(t, err)

		repo.AssertCalled(t, "CompletedHistory", ctx, userID, 100)
	})

	t.Run("passes a smaller limit through", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewCompletedHistoryHandler(repo)

		repo.On("CompletedHistory", ctx, userID, 20).Return([]*domain.Task{}, nil)

		_, err := handler.Handle(ctx, CompletedHistoryQuery{UserID: userID, Limit: 20})
		require.NoError(t, err)

		repo.AssertCalled(t, "CompletedHistory", ctx, userID, 20)
	})
}
