package commands

import (
	"context"
	"time"

	sharedApplication "github.com/felixgeelhaar/focusfive/internal/shared/application"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/focusfive/internal/tasks/domain"
	"github.com/google/uuid"
)

// ToggleTaskCommand flips a task's completion state. ActualMinutes,
// when positive, records the time spent on a task being completed; it
// is ignored when the toggle reopens the task.
type ToggleTaskCommand struct {
	TaskID        uuid.UUID
	UserID        uuid.UUID
	ActualMinutes int
}

// ToggleTaskResult reports the new completion state.
type ToggleTaskResult struct {
	Completed bool
}

// ToggleTaskHandler handles the ToggleTaskCommand.
type ToggleTaskHandler struct {
	taskRepo   domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	now        func() time.Time
}

// NewToggleTaskHandler creates a new ToggleTaskHandler.
func NewToggleTaskHandler(taskRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *ToggleTaskHandler {
	return &ToggleTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		now:        time.Now,
	}
}

// Handle executes the ToggleTaskCommand.
func (h *ToggleTaskHandler) Handle(ctx context.Context, cmd ToggleTaskCommand) (*ToggleTaskResult, error) {
	var result *ToggleTaskResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		task, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}
		if task == nil || task.UserID() != cmd.UserID {
			return ErrTaskNotFound
		}

		completed := task.Toggle(h.now())
		if completed && cmd.ActualMinutes > 0 {
			if err := task.SetActualMinutes(cmd.ActualMinutes); err != nil {
				return err
			}
		}

		if err := h.taskRepo.Save(txCtx, task); err != nil {
			return err
		}
		if err := saveEvents(txCtx, h.outboxRepo, cmd.UserID, task.DomainEvents()); err != nil {
			return err
		}

		result = &ToggleTaskResult{Completed: completed}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
