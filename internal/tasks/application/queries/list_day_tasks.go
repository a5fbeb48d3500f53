package queries

import (
	"context"
	"errors"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/felixgeelhaar/focusfive/internal/tasks/domain"
	"github.com/google/uuid"
)

// ErrTaskNotFound is returned when a task is not found.
var ErrTaskNotFound = errors.New("task not found")

// TaskDTO is the read model for a daily task.
type TaskDTO struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Priority         int       `json:"priority"`
	Completed        bool      `json:"completed"`
	Date             string    `json:"date"`
	Category         string    `json:"category"`
	EnergyLevel      string    `json:"energy_level"`
	EstimatedMinutes int       `json:"estimated_minutes"`
	ActualMinutes    int       `json:"actual_minutes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toTaskDTO(task *domain.Task) TaskDTO {
	return TaskDTO{
		ID:               task.ID(),
		Title:            task.Title(),
		Priority:         task.Priority(),
		Completed:        task.IsCompleted(),
		Date:             task.Date().String(),
		Category:         string(task.Category()),
		EnergyLevel:      string(task.EnergyLevel()),
		EstimatedMinutes: task.EstimatedMinutes(),
		ActualMinutes:    task.ActualMinutes(),
		CreatedAt:        task.CreatedAt(),
		UpdatedAt:        task.UpdatedAt(),
	}
}

// ListDayTasksQuery contains the parameters for listing a day's tasks.
type ListDayTasksQuery struct {
	UserID uuid.UUID
	Date   sharedDomain.Date
}

// ListDayTasksResult contains the day's tasks plus completion counts.
type ListDayTasksResult struct {
	Tasks          []TaskDTO `json:"tasks"`
	CompletedCount int       `json:"completed_count"`
	Remaining      int       `json:"remaining"`
}

// DailyLimitSource supplies the user's configured daily task goal.
type DailyLimitSource interface {
	DailyGoal(ctx context.Context, userID uuid.UUID) (int, error)
}

// ListDayTasksHandler handles the ListDayTasksQuery.
type ListDayTasksHandler struct {
	taskRepo domain.Repository
	limits   DailyLimitSource
}

// NewListDayTasksHandler creates a new ListDayTasksHandler.
func NewListDayTasksHandler(taskRepo domain.Repository, limits DailyLimitSource) *ListDayTasksHandler {
	return &ListDayTasksHandler{taskRepo: taskRepo, limits: limits}
}

// Handle executes the ListDayTasksQuery.
func (h *ListDayTasksHandler) Handle(ctx context.Context, query ListDayTasksQuery) (*ListDayTasksResult, error) {
	limit, err := h.limits.DailyGoal(ctx, query.UserID)
	if err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = domain.DefaultDailyTasks
	}

	tasks, err := h.taskRepo.FindByUserAndDate(ctx, query.UserID, query.Date)
	if err != nil {
		return nil, err
	}

	dtos := make([]TaskDTO, 0, len(tasks))
	completed := 0
	for _, task := range tasks {
		if task.IsCompleted() {
			completed++
		}
		dtos = append(dtos, toTaskDTO(task))
	}

	remaining := limit - len(tasks)
	if remaining < 0 {
		remaining = 0
	}

	return &ListDayTasksResult{
		Tasks:          dtos,
		CompletedCount: completed,
		Remaining:      remaining,
	}, nil
}
