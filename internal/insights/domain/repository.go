package domain

import (
	"context"

	"github.com/google/uuid"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
)

// HistoryRecord is a read-model projection of one completed task, carrying
// only the fields the insight rules consume.
type HistoryRecord struct {
	Date             sharedDomain.Date
	Category         string
	EstimatedMinutes int
	ActualMinutes    int
}

// DaySummary aggregates the task list for a single day.
type DaySummary struct {
	Completed int
	Total     int
}

// HistorySource supplies completed-task history, most recent first. This
// context only ever reads the tasks table; the tasks context owns all
// writes to it.
type HistorySource interface {
	RecentCompleted(ctx context.Context, userID uuid.UUID, limit int) ([]HistoryRecord, error)
	DaySummary(ctx context.Context, userID uuid.UUID, date sharedDomain.Date) (DaySummary, error)
}

// StreakSource supplies the user's current completion streak.
type StreakSource interface {
	CurrentStreak(ctx context.Context, userID uuid.UUID) (int, error)
}

// GoalSource supplies the user's configured daily task limit.
type GoalSource interface {
	DailyGoal(ctx context.Context, userID uuid.UUID) (int, error)
}
