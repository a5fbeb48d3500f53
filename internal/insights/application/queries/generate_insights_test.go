package queries

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/focusfive/internal/insights/application/services"
	"github.com/felixgeelhaar/focusfive/internal/insights/domain"
	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
)

type mockHistorySource struct {
	mock.Mock
}

func (m *mockHistorySource) RecentCompleted(ctx context.Context, userID uuid.UUID, limit int) ([]domain.HistoryRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryRecord), args.Error(1)
}

func (m *mockHistorySource) DaySummary(ctx context.Context, userID uuid.UUID, date sharedDomain.Date) (domain.DaySummary, error) {
	args := m.Called(ctx, userID, date)
	return args.Get(0).(domain.DaySummary), args.Error(1)
}

type mockStreakSource struct {
	mock.Mock
}

func (m *mockStreakSource) CurrentStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type mockGoalSource struct {
	mock.Mock
}

func (m *mockGoalSource) DailyGoal(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func testDate(t *testing.T) sharedDomain.Date {
	t.Helper()
	return sharedDomain.DateOf(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))
}

func TestGenerateInsightsHandler_Handle(t *testing.T) {
	ctx := context.Background()
	generator := services.NewInsightGenerator(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	userID := uuid.New()

	t.Run("assembles input and returns insights in rule order", func(t *testing.T) {
		date := testDate(t)
		history := make([]domain.HistoryRecord, 0, 8)
		for i := 0; i < 8; i++ {
			history = append(history, domain.HistoryRecord{
				Date:     date.AddDays(-i),
				Category: "health",
			})
		}

		historySource := new(mockHistorySource)
		streakSource := new(mockStreakSource)
		goalSource := new(mockGoalSource)
		historySource.On("RecentCompleted", ctx, userID, 100).Return(history, nil)
		historySource.On("DaySummary", ctx, userID, date).Return(domain.DaySummary{Completed: 3, Total: 5}, nil)
		streakSource.On("CurrentStreak", ctx, userID).Return(8, nil)
		goalSource.On("DailyGoal", ctx, userID).Return(5, nil)

		handler := NewGenerateInsightsHandler(historySource, streakSource, goalSource, generator)
		result, err := handler.Handle(ctx, GenerateInsightsQuery{UserID: userID, Date: date})

		require.NoError(t, err)
		require.Len(t, result.Insights, 3)
		assert.Equal(t, domain.InsightCategoryConcentration, result.Insights[0].ID)
		assert.Equal(t, domain.InsightStreakAchievement, result.Insights[1].ID)
		assert.Equal(t, domain.InsightDailyMomentum, result.Insights[2].ID)
		assert.Equal(t, "pattern", result.Insights[0].Kind)
		historySource.AssertExpectations(t)
	})

	t.Run("empty history yields an empty result", func(t *testing.T) {
		date := testDate(t)
		historySource := new(mockHistorySource)
		streakSource := new(mockStreakSource)
		goalSource := new(mockGoalSource)
		historySource.On("RecentCompleted", ctx, userID, 100).Return([]domain.HistoryRecord{}, nil)
		historySource.On("DaySummary", ctx, userID, date).Return(domain.DaySummary{}, nil)
		streakSource.On("CurrentStreak", ctx, userID).Return(0, nil)
		goalSource.On("DailyGoal", ctx, userID).Return(5, nil)

		handler := NewGenerateInsightsHandler(historySource, streakSource, goalSource, generator)
		result, err := handler.Handle(ctx, GenerateInsightsQuery{UserID: userID, Date: date})

		require.NoError(t, err)
		assert.Empty(t, result.Insights)
	})

	t.Run("rejects missing user", func(t *testing.T) {
		handler := NewGenerateInsightsHandler(new(mockHistorySource), new(mockStreakSource), new(mockGoalSource), generator)
		_, err := handler.Handle(ctx, GenerateInsightsQuery{Date: testDate(t)})
		assert.Error(t, err)
	})

	t.Run("propagates history source failure", func(t *testing.T) {
		date := testDate(t)
		historySource := new(mockHistorySource)
		historySource.On("RecentCompleted", ctx, userID, 100).Return(nil, assert.AnError)

		handler := NewGenerateInsightsHandler(historySource, new(mockStreakSource), new(mockGoalSource), generator)
		_, err := handler.Handle(ctx, GenerateInsightsQuery{UserID: userID, Date: date})
		assert.ErrorIs(t, err, assert.AnError)
	})
}
