package services

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/felixgeelhaar/focusfive/internal/insights/domain"
)

const (
	concentrationMinHistory = 7
	concentrationWindow     = 14
	accuracyMinRecords      = 5
	accuracyThreshold       = 0.70
	momentumMinCompleted    = 3
	streakMilestone         = 7
)

// GenerationInput carries everything the insight rules consume. Keeping
// the clock-dependent pieces (today's summary, current streak) in the
// input makes generation deterministic and trivially testable.
type GenerationInput struct {
	// History holds completed-task records, most recent first.
	History []domain.HistoryRecord
	Today   domain.DaySummary
	Streak  int

	// DailyGoal is the user's configured daily task limit.
	DailyGoal int
}

// InsightGenerator derives human-readable observations from task history.
type InsightGenerator struct {
	logger *slog.Logger
}

// NewInsightGenerator creates a new insight generator.
func NewInsightGenerator(logger *slog.Logger) *InsightGenerator {
	return &InsightGenerator{logger: logger}
}

// Generate evaluates every insight rule against the input. Rules are
// evaluated in a fixed order and each contributes at most one insight,
// so identical inputs always produce identical output.
func (g *InsightGenerator) Generate(input GenerationInput) []domain.Insight {
	insights := []domain.Insight{}

	if insight, ok := g.categoryConcentration(input.History); ok {
		insights = append(insights, insight)
	}
	if insight, ok := g.estimationAccuracy(input.History); ok {
		insights = append(insights, insight)
	}
	if insight, ok := g.streakAchievement(input.Streak); ok {
		insights = append(insights, insight)
	}
	if insight, ok := g.dailyMomentum(input.Today, input.DailyGoal); ok {
		insights = append(insights, insight)
	}

	g.logger.Debug("generated insights",
		slog.Int("history_records", len(input.History)),
		slog.Int("count", len(insights)))

	return insights
}

func (g *InsightGenerator) categoryConcentration(history []domain.HistoryRecord) (domain.Insight, bool) {
	if len(history) < concentrationMinHistory {
		return domain.Insight{}, false
	}

	window := history
	if len(window) > concentrationWindow {
		window = window[:concentrationWindow]
	}

	counts := make(map[string]int)
	for _, record := range window {
		counts[record.Category]++
	}

	// Ties break toward the lexicographically smaller category so the
	// result is stable across passes over the map.
	var mode string
	var modeCount int
	for category, count := range counts {
		if count > modeCount || (count == modeCount && category < mode) {
			mode = category
			modeCount = count
		}
	}

	share := int(math.Round(float64(modeCount) / float64(len(window)) * 100))

	insight := domain.NewInsight(
		domain.InsightCategoryConcentration,
		domain.KindPattern,
		fmt.Sprintf("You gravitate toward %s tasks", mode),
		fmt.Sprintf("%d%% of your last %d completed tasks were %s tasks.", share, len(window), mode),
		0.85,
		false,
	)
	insight.SetDataContext("category", mode)
	insight.SetDataContext("share_percent", share)
	insight.SetDataContext("window_size", len(window))
	return insight, true
}

func (g *InsightGenerator) estimationAccuracy(history []domain.HistoryRecord) (domain.Insight, bool) {
	var sum float64
	var qualifying int
	for _, record := range history {
		if record.EstimatedMinutes <= 0 || record.ActualMinutes <= 0 {
			continue
		}
		diff := math.Abs(float64(record.EstimatedMinutes - record.ActualMinutes))
		accuracy := 1 - diff/float64(record.EstimatedMinutes)
		if accuracy < 0 {
			accuracy = 0
		}
		sum += accuracy
		qualifying++
	}

	if qualifying < accuracyMinRecords {
		return domain.Insight{}, false
	}

	average := sum / float64(qualifying)
	if average >= accuracyThreshold {
		return domain.Insight{}, false
	}

	percent := int(math.Round(average * 100))

	insight := domain.NewInsight(
		domain.InsightEstimationAccuracy,
		domain.KindRecommendation,
		"Your time estimates are off",
		fmt.Sprintf("Your estimates match actual time only %d%% of the time. Try adding a buffer when estimating.", percent),
		0.90,
		true,
	)
	insight.SetDataContext("average_accuracy", average)
	insight.SetDataContext("qualifying_records", qualifying)
	return insight, true
}

func (g *InsightGenerator) streakAchievement(streak int) (domain.Insight, bool) {
	if streak < streakMilestone {
		return domain.Insight{}, false
	}

	insight := domain.NewInsight(
		domain.InsightStreakAchievement,
		domain.KindAchievement,
		fmt.Sprintf("%d-day streak", streak),
		fmt.Sprintf("You've completed at least one task every day for %d days in a row.", streak),
		1.0,
		false,
	)
	insight.SetDataContext("streak", streak)
	return insight, true
}

func (g *InsightGenerator) dailyMomentum(today domain.DaySummary, dailyGoal int) (domain.Insight, bool) {
	if today.Completed < momentumMinCompleted || today.Total != dailyGoal {
		return domain.Insight{}, false
	}

	insight := domain.NewInsight(
		domain.InsightDailyMomentum,
		domain.KindRecommendation,
		"Strong momentum today",
		fmt.Sprintf("You've completed %d of your %d tasks today. Keep the momentum going.", today.Completed, today.Total),
		0.80,
		false,
	)
	insight.SetDataContext("completed_today", today.Completed)
	insight.SetDataContext("total_today", today.Total)
	return insight, true
}
