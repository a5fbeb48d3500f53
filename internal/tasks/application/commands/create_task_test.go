package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/focusfive/internal/tasks/application/services"
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

// mockOutboxRepo is a mock implementation of outbox.Repository.
type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) Save(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockOutboxRepo) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) MarkPublished(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id int64, err string, nextRetryAt time.Time) error {
	args := m.Called(ctx, id, err, nextRetryAt)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkDead(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetFailed(ctx context.Context, maxRetries, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, maxRetries, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	args := m.Called(ctx, olderThanDays)
	return args.Get(0).(int64), args.Error(1)
}

// mockUnitOfWork is a mock implementation of UnitOfWork.
type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// stubLimitSource returns a fixed daily goal.
type stubLimitSource struct {
	limit int
	err   error
}

func (s stubLimitSource) DailyGoal(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.limit, s.err
}

type txKey struct{}

func testTx(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, "transaction")
}

func testDate(t *testing.T) sharedDomain.Date {
	t.Helper()
	d, err := sharedDomain.NewDate("2026-08-30")
	require.NoError(t, err)
	return d
}

func TestCreateTaskHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("creates a task at the next priority", func(t *testing.T) {
		repo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCreateTaskHandler(repo, outboxRepo, services.NewCapacityPolicy(), stubLimitSource{limit: 5}, uow)

		ctx := context.Background()
		txCtx := testTx(ctx)
		date := testDate(t)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("CountByUserAndDate", txCtx, userID, date).Return(2, nil)
		repo.On("Save", txCtx, mock.AnythingOfType("*domain.Task")).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, CreateTaskCommand{
			UserID:   userID,
			Title:    "Ship release notes",
			Date:     date,
			Category: "work",
		})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.NotEqual(t, uuid.Nil, result.TaskID)
		assert.Equal(t, 3, result.Priority)

		repo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("rejects a full day", func(t *testing.T) {
		repo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCreateTaskHandler(repo, outboxRepo, services.NewCapacityPolicy(), stubLimitSource{limit: 5}, uow)

		ctx := context.Background()
		txCtx := testTx(ctx)
		date := testDate(t)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("CountByUserAndDate", txCtx, userID, date).Return(5, nil)

		result, err := handler.Handle(ctx, CreateTaskCommand{
			UserID: userID,
			Title:  "One too many",
			Date:   date,
		})

		assert.ErrorIs(t, err, domain.ErrDailyCapacityReached)
		assert.Nil(t, result)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("honours a lowered daily goal", func(t *testing.T) {
		repo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCreateTaskHandler(repo, outboxRepo, services.NewCapacityPolicy(), stubLimitSource{limit: 3}, uow)

		ctx := context.Background()
		txCtx := testTx(ctx)
		date := testDate(t)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("CountByUserAndDate", txCtx, userID, date).Return(3, nil)

		result, err := handler.Handle(ctx, CreateTaskCommand{
			UserID: userID,
			Title:  "Fourth of three",
			Date:   date,
		})

		assert.ErrorIs(t, err, domain.ErrDailyCapacityReached)
		assert.Nil(t, result)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("allows room under a raised daily goal", func(t *testing.T) {
		repo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCreateTaskHandler(repo, outboxRepo, services.NewCapacityPolicy(), stubLimitSource{limit: 7}, uow)

		ctx := context.Background()
		txCtx := testTx(ctx)
		date := testDate(t)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("CountByUserAndDate", txCtx, userID, date).Return(5, nil)
		repo.On("Save", txCtx, mock.AnythingOfType("*domain.Task")).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, CreateTaskCommand{
			UserID: userID,
			Title:  "Sixth of seven",
			Date:   date,
		})

		require.NoError(t, err)
		assert.Equal(t, 6, result.Priority)
	})

	t.Run("propagates settings lookup errors", func(t *testing.T) {
		repo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		lookupErr := errors.New("settings unavailable")
		handler := NewCreateTaskHandler(repo, outboxRepo, services.NewCapacityPolicy(), stubLimitSource{err: lookupErr}, uow)

		_, err := handler.Handle(context.Background(), CreateTaskCommand{
			UserID: userID,
			Title:  "Test",
			Date:   testDate(t),
		})

		assert.ErrorIs(t, err, lookupErr)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("rejects invalid category", func(t *testing.T) {
		repo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCreateTaskHandler(repo, outboxRepo, services.NewCapacityPolicy(), stubLimitSource{limit: 5}, uow)

		ctx := context.Background()
		txCtx := testTx(ctx)
		date := testDate(t)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("CountByUserAndDate", txCtx, userID, date).Return(0, nil)

		_, err := handler.Handle(ctx, CreateTaskCommand{
			UserID:   userID,
			Title:    "Test",
			Date:     date,
			Category: "chores",
		})

		assert.ErrorIs(t, err, domain.ErrTaskInvalidCategory)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		repo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCreateTaskHandler(repo, outboxRepo, services.NewCapacityPolicy(), stubLimitSource{limit: 5}, uow)

		ctx := context.Background()
		txCtx := testTx(ctx)
		date := testDate(t)
		storeErr := errors.New("connection lost")

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("CountByUserAndDate", txCtx, userID, date).Return(0, storeErr)

		_, err := handler.Handle(ctx, CreateTaskCommand{
			UserID: userID,
			Title:  "Test",
			Date:   date,
		})

		assert.ErrorIs(t, err, storeErr)
	})
}
