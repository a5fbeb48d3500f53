package commands

import (
	"context"

	sharedApplication "github.com/felixgeelhaar/focusfive/internal/shared/application"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/focusfive/internal/tasks/domain"
	"github.com/google/uuid"
)

// UpdateTaskCommand patches mutable task fields. Nil pointers leave the
// field untouched.
type UpdateTaskCommand struct {
	TaskID           uuid.UUID
	UserID           uuid.UUID
	Title            *string
	Category         *string
	EnergyLevel      *string
	EstimatedMinutes *int
	ActualMinutes    *int
}

// UpdateTaskHandler handles the UpdateTaskCommand.
type UpdateTaskHandler struct {
	taskRepo   domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewUpdateTaskHandler creates a new UpdateTaskHandler.
func NewUpdateTaskHandler(taskRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *UpdateTaskHandler {
	return &UpdateTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the UpdateTaskCommand.
func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		task, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}
		if task == nil || task.UserID() != cmd.UserID {
			return ErrTaskNotFound
		}

		if cmd.Title != nil {
			if err := task.SetTitle(*cmd.Title); err != nil {
				return err
			}
		}
		if cmd.Category != nil {
			if err := task.SetCategory(domain.Category(*cmd.Category)); err != nil {
				return err
			}
		}
		if cmd.EnergyLevel != nil {
			if err := task.SetEnergyLevel(domain.EnergyLevel(*cmd.EnergyLevel)); err != nil {
				return err
			}
		}
		if cmd.EstimatedMinutes != nil {
			if err := task.SetEstimatedMinutes(*cmd.EstimatedMinutes); err != nil {
				return err
			}
		}
		if cmd.ActualMinutes != nil {
			if err := task.SetActualMinutes(*cmd.ActualMinutes); err != nil {
				return err
			}
		}

		if err := h.taskRepo.Save(txCtx, task); err != nil {
			return err
		}
		return saveEvents(txCtx, h.outboxRepo, cmd.UserID, task.DomainEvents())
	})
}
