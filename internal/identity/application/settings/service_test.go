package settings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/focusfive/internal/identity/domain"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/outbox"
)

// mockSettingsRepo is a mock implementation of domain.SettingsRepository.
type mockSettingsRepo struct {
	mock.Mock
}

func (m *mockSettingsRepo) Save(ctx context.Context, settings *domain.UserSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *mockSettingsRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserSettings), args.Error(1)
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

type txKey struct{}

func testTx(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, "transaction")
}

func existingSettings(t *testing.T, userID uuid.UUID) *domain.UserSettings {
	t.Helper()
	settings, err := domain.NewUserSettings(userID, 5, 35)
	require.NoError(t, err)
	settings.ClearDomainEvents()
	return settings
}

func TestService_GetOrCreate(t *testing.T) {
	userID := uuid.New()

	t.Run("returns existing settings without writing", func(t *testing.T) {
		repo := new(mockSettingsRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		service := NewService(repo, outboxRepo, uow, 5, 35)

		ctx := context.Background()
		repo.On("FindByUserID", ctx, userID).Return(existingSettings(t, userID), nil)

		dto, err := service.GetOrCreate(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, userID, dto.UserID)
		assert.Equal(t, 5, dto.DailyGoal)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("creates with defaults on first access", func(t *testing.T) {
		repo := new(mockSettingsRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		service := NewService(repo, outboxRepo, uow, 5, 35)

		ctx := context.Background()
		txCtx := testTx(ctx)
		repo.On("FindByUserID", ctx, userID).Return(nil, nil)
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("Save", txCtx, mock.AnythingOfType("*domain.UserSettings")).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		dto, err := service.GetOrCreate(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 5, dto.DailyGoal)
		assert.Equal(t, 35, dto.WeeklyGoal)
		assert.True(t, dto.SoundEnabled)
		assert.Equal(t, domain.DefaultResetTime, dto.ResetTime)
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})
}

func TestService_Update(t *testing.T) {
	userID := uuid.New()

	t.Run("patches only the provided fields", func(t *testing.T) {
		repo := new(mockSettingsRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		service := NewService(repo, outboxRepo, uow, 5, 35)

		ctx := context.Background()
		txCtx := testTx(ctx)
		repo.On("FindByUserID", ctx, userID).Return(existingSettings(t, userID), nil)
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("Save", txCtx, mock.AnythingOfType("*domain.UserSettings")).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		darkMode := true
		dailyGoal := 7
		dto, err := service.Update(ctx, UpdateSettings{
			UserID:    userID,
			DarkMode:  &darkMode,
			DailyGoal: &dailyGoal,
		})

		require.NoError(t, err)
		assert.True(t, dto.DarkMode)
		assert.Equal(t, 7, dto.DailyGoal)
		assert.Equal(t, 35, dto.WeeklyGoal)
		assert.Equal(t, domain.DefaultTimezone, dto.Timezone)
	})

	t.Run("rejects invalid patch before any write", func(t *testing.T) {
		repo := new(mockSettingsRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		service := NewService(repo, outboxRepo, uow, 5, 35)

		ctx := context.Background()
		repo.On("FindByUserID", ctx, userID).Return(existingSettings(t, userID), nil)

		badGoal := 42
		_, err := service.Update(ctx, UpdateSettings{UserID: userID, DailyGoal: &badGoal})

		assert.ErrorIs(t, err, domain.ErrSettingsInvalidDailyGoal)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestService_Goals(t *testing.T) {
	userID := uuid.New()

	repo := new(mockSettingsRepo)
	outboxRepo := new(mockOutboxRepo)
	uow := new(mockUnitOfWork)
	service := NewService(repo, outboxRepo, uow, 5, 35)

	ctx := context.Background()
	settings := existingSettings(t, userID)
	require.NoError(t, settings.SetWeeklyGoal(40))
	repo.On("FindByUserID", ctx, userID).Return(settings, nil)

	daily, err := service.DailyGoal(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 5, daily)

	weekly, err := service.WeeklyGoal(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 40, weekly)
}
