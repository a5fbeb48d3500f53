package commands

import (
	"context"

	sharedApplication "github.com/felixgeelhaar/focusfive/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/focusfive/internal/tasks/application/services"
	"github.com/felixgeelhaar/focusfive/internal/tasks/domain"
	"github.com/google/uuid"
)

// CreateTaskCommand contains the data needed to create a daily task.
type CreateTaskCommand struct {
	UserID           uuid.UUID
	Title            string
	Date             sharedDomain.Date
	Category         string
	EnergyLevel      string
	EstimatedMinutes int
}

// CreateTaskResult contains the result of creating a task.
type CreateTaskResult struct {
	TaskID   uuid.UUID
	Priority int
}

// DailyLimitSource supplies the user's configured daily task goal.
type DailyLimitSource interface {
	DailyGoal(ctx context.Context, userID uuid.UUID) (int, error)
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo   domain.Repository
	outboxRepo outbox.Repository
	capacity   *services.CapacityPolicy
	limits     DailyLimitSource
	uow        sharedApplication.UnitOfWork
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(taskRepo domain.Repository, outboxRepo outbox.Repository, capacity *services.CapacityPolicy, limits DailyLimitSource, uow sharedApplication.UnitOfWork) *CreateTaskHandler {
	return &CreateTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		capacity:   capacity,
		limits:     limits,
		uow:        uow,
	}
}

// Handle executes the CreateTaskCommand. The capacity check compares the
// day's count against the user's configured goal and runs inside the
// same transaction as the insert so a full day never overflows.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*CreateTaskResult, error) {
	limit, err := h.limits.DailyGoal(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	var result *CreateTaskResult

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		count, err := h.taskRepo.CountByUserAndDate(txCtx, cmd.UserID, cmd.Date)
		if err != nil {
			return err
		}
		if !h.capacity.CanAddTask(count, limit) {
			return domain.ErrDailyCapacityReached
		}

		task, err := domain.NewTask(cmd.UserID, cmd.Title, count+1, cmd.Date)
		if err != nil {
			return err
		}

		if cmd.Category != "" {
			if err := task.SetCategory(domain.Category(cmd.Category)); err != nil {
				return err
			}
		}
		if cmd.EnergyLevel != "" {
			if err := task.SetEnergyLevel(domain.EnergyLevel(cmd.EnergyLevel)); err != nil {
				return err
			}
		}
		if cmd.EstimatedMinutes > 0 {
			if err := task.SetEstimatedMinutes(cmd.EstimatedMinutes); err != nil {
				return err
			}
		}

		if err := h.taskRepo.Save(txCtx, task); err != nil {
			return err
		}

		if err := saveEvents(txCtx, h.outboxRepo, cmd.UserID, task.DomainEvents()); err != nil {
			return err
		}

		result = &CreateTaskResult{TaskID: task.ID(), Priority: task.Priority()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
