package queries

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/focusfive/internal/insights/application/services"
	"github.com/felixgeelhaar/focusfive/internal/insights/domain"
	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
)

// historyWindow bounds how much completed-task history feeds the rules.
const historyWindow = 100

// GenerateInsightsQuery requests a fresh set of insights for one user
// and day. Insights are computed on demand and never stored.
type GenerateInsightsQuery struct {
	UserID uuid.UUID
	Date   sharedDomain.Date
}

// InsightDTO is the query-side representation of an insight.
type InsightDTO struct {
	ID          string         `json:"id"`
	Kind        string         `json:"kind"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Confidence  float64        `json:"confidence"`
	Actionable  bool           `json:"actionable"`
	Data        map[string]any `json:"data,omitempty"`
}

// GenerateInsightsResult contains the generated insights in rule order.
type GenerateInsightsResult struct {
	Insights []InsightDTO `json:"insights"`
}

// GenerateInsightsHandler assembles the generator's input from the read
// models and runs the rules.
type GenerateInsightsHandler struct {
	history   domain.HistorySource
	streaks   domain.StreakSource
	goals     domain.GoalSource
	generator *services.InsightGenerator
}

// NewGenerateInsightsHandler creates a new generate insights handler.
func NewGenerateInsightsHandler(
	history domain.HistorySource,
	streaks domain.StreakSource,
	goals domain.GoalSource,
	generator *services.InsightGenerator,
) *GenerateInsightsHandler {
	return &GenerateInsightsHandler{
		history:   history,
		streaks:   streaks,
		goals:     goals,
		generator: generator,
	}
}

// Handle executes the query.
func (h *GenerateInsightsHandler) Handle(ctx context.Context, query GenerateInsightsQuery) (*GenerateInsightsResult, error) {
	if query.UserID == uuid.Nil {
		return nil, fmt.Errorf("user ID is required")
	}
	if query.Date.IsZero() {
		return nil, fmt.Errorf("date is required")
	}

	history, err := h.history.RecentCompleted(ctx, query.UserID, historyWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load task history: %w", err)
	}

	today, err := h.history.DaySummary(ctx, query.UserID, query.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load day summary: %w", err)
	}

	streak, err := h.streaks.CurrentStreak(ctx, query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load streak: %w", err)
	}

	dailyGoal, err := h.goals.DailyGoal(ctx, query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily goal: %w", err)
	}

	insights := h.generator.Generate(services.GenerationInput{
		History:   history,
		Today:     today,
		Streak:    streak,
		DailyGoal: dailyGoal,
	})

	result := &GenerateInsightsResult{Insights: make([]InsightDTO, 0, len(insights))}
	for _, insight := range insights {
		result.Insights = append(result.Insights, InsightDTO{
			ID:          insight.ID,
			Kind:        string(insight.Kind),
			Title:       insight.Title,
			Description: insight.Description,
			Confidence:  insight.Confidence,
			Actionable:  insight.Actionable,
			Data:        insight.DataContext,
		})
	}
	return result, nil
}
