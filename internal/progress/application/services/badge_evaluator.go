package services

import (
	"github.com/felixgeelhaar/focusfive/internal/progress/domain"
)

// EvaluationInput carries the numbers badge rules are judged against.
type EvaluationInput struct {
	Streak          int
	WeeklyCompleted int
	WeeklyGoal      int
}

// BadgeEvaluator decides which catalog badges a user has newly earned.
type BadgeEvaluator struct {
	streakThresholds map[domain.BadgeType]int
}

// NewBadgeEvaluator creates a BadgeEvaluator.
func NewBadgeEvaluator() *BadgeEvaluator {
	return &BadgeEvaluator{
		streakThresholds: map[domain.BadgeType]int{
			domain.BadgeStreak3:  3,
			domain.BadgeStreak7:  7,
			domain.BadgeStreak14: 14,
			domain.BadgeStreak30: 30,
		},
	}
}

// Evaluate walks the catalog in order and returns every badge whose
// condition holds and that the user does not already hold. A single
// pass can award multiple badges; re-running with the same input and an
// updated earned set awards nothing.
func (e *BadgeEvaluator) Evaluate(input EvaluationInput, earned map[domain.BadgeType]bool) []domain.BadgeType {
	var awarded []domain.BadgeType

	for _, badgeType := range domain.Catalog() {
		if earned[badgeType] {
			continue
		}
		if e.qualifies(badgeType, input) {
			awarded = append(awarded, badgeType)
		}
	}
	return awarded
}

func (e *BadgeEvaluator) qualifies(badgeType domain.BadgeType, input EvaluationInput) bool {
	if threshold, ok := e.streakThresholds[badgeType]; ok {
		return input.Streak >= threshold
	}
	if badgeType == domain.BadgeWeeklyGoal {
		if input.WeeklyGoal < 1 {
			return false
		}
		return float64(input.WeeklyCompleted)/float64(input.WeeklyGoal) >= 1.0
	}
	return false
}
