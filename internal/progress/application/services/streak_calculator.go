package services

import (
	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
)

// MaxStreak caps the streak walk so unbounded histories stay cheap.
const MaxStreak = 365

// StreakCalculator computes consecutive-day completion streaks.
type StreakCalculator struct{}

// NewStreakCalculator creates a StreakCalculator.
func NewStreakCalculator() *StreakCalculator {
	return &StreakCalculator{}
}

// Calculate counts consecutive days with at least one completion,
// walking backward from today. A day counts once no matter how many
// tasks were completed on it. No completion today means no active
// streak. The result is capped at MaxStreak.
func (c *StreakCalculator) Calculate(completionDates []sharedDomain.Date, today sharedDomain.Date) int {
	if len(completionDates) == 0 {
		return 0
	}

	days := make(map[string]bool, len(completionDates))
	for _, d := range completionDates {
		days[d.String()] = true
	}

	if !days[today.String()] {
		return 0
	}

	streak := 0
	cursor := today
	for days[cursor.String()] && streak < MaxStreak {
		streak++
		cursor = cursor.AddDays(-1)
	}
	return streak
}
