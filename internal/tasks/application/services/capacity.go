package services

import (
	"github.com/felixgeelhaar/focusfive/internal/tasks/domain"
)

// CapacityPolicy enforces the per-user daily task limit and keeps
// priority positions contiguous when the day's list changes.
type CapacityPolicy struct {
	defaultLimit int
}

// NewCapacityPolicy creates a policy that falls back to the default
// limit when a caller has no configured goal.
func NewCapacityPolicy() *CapacityPolicy {
	return &CapacityPolicy{defaultLimit: domain.DefaultDailyTasks}
}

// DailyLimit normalizes a configured goal, substituting the default for
// non-positive values.
func (p *CapacityPolicy) DailyLimit(limit int) int {
	if limit < 1 {
		return p.defaultLimit
	}
	return limit
}

// CanAddTask reports whether a day with currentCount tasks has room for
// one more under the given limit. A day at the limit is full.
func (p *CapacityPolicy) CanAddTask(currentCount, dailyLimit int) bool {
	return currentCount < p.DailyLimit(dailyLimit)
}

// Reorder moves the task at fromIndex to toIndex and renumbers every
// task's priority to match its new position. The slice must be sorted
// by priority ascending. toIndex is clamped into range; an out-of-range
// fromIndex or a move to the same position leaves the list untouched.
// Returns true when anything changed.
func (p *CapacityPolicy) Reorder(tasks []*domain.Task, fromIndex, toIndex int) (bool, error) {
	if fromIndex < 0 || fromIndex >= len(tasks) {
		return false, nil
	}
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex >= len(tasks) {
		toIndex = len(tasks) - 1
	}
	if fromIndex == toIndex {
		return false, nil
	}

	moved := tasks[fromIndex]
	copy(tasks[fromIndex:], tasks[fromIndex+1:])
	tasks[len(tasks)-1] = moved
	copy(tasks[toIndex+1:], tasks[toIndex:len(tasks)-1])
	tasks[toIndex] = moved

	return true, p.Renumber(tasks)
}

// Renumber assigns priorities 1..n in slice order.
func (p *CapacityPolicy) Renumber(tasks []*domain.Task) error {
	for i, task := range tasks {
		if err := task.SetPriority(i + 1); err != nil {
			return err
		}
	}
	return nil
}
