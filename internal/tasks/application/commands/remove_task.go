package commands

import (
	"context"

	sharedApplication "github.com/felixgeelhaar/focusfive/internal/shared/application"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/focusfive/internal/tasks/application/services"
	"github.com/felixgeelhaar/focusfive/internal/tasks/domain"
	"github.com/google/uuid"
)

// RemoveTaskCommand removes a task from the day's priority list.
type RemoveTaskCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

// RemoveTaskHandler handles the RemoveTaskCommand.
type RemoveTaskHandler struct {
	taskRepo   domain.Repository
	outboxRepo outbox.Repository
	capacity   *services.CapacityPolicy
	uow        sharedApplication.UnitOfWork
}

// NewRemoveTaskHandler creates a new RemoveTaskHandler.
func NewRemoveTaskHandler(taskRepo domain.Repository, outboxRepo outbox.Repository, capacity *services.CapacityPolicy, uow sharedApplication.UnitOfWork) *RemoveTaskHandler {
	return &RemoveTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		capacity:   capacity,
		uow:        uow,
	}
}

// Handle executes the RemoveTaskCommand. Surviving tasks are renumbered
// in the same transaction so priorities stay contiguous from 1.
func (h *RemoveTaskHandler) Handle(ctx context.Context, cmd RemoveTaskCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		task, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}
		if task == nil || task.UserID() != cmd.UserID {
			return ErrTaskNotFound
		}

		task.MarkRemoved()

		if err := h.taskRepo.Delete(txCtx, task.ID()); err != nil {
			return err
		}

		remaining, err := h.taskRepo.FindByUserAndDate(txCtx, cmd.UserID, task.Date())
		if err != nil {
			return err
		}
		survivors := remaining[:0]
		for _, r := range remaining {
			if r.ID() != task.ID() {
				survivors = append(survivors, r)
			}
		}
		if err := h.capacity.Renumber(survivors); err != nil {
			return err
		}
		if err := h.taskRepo.SaveAll(txCtx, survivors); err != nil {
			return err
		}

		return saveEvents(txCtx, h.outboxRepo, cmd.UserID, task.DomainEvents())
	})
}
