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

// ReorderTasksCommand moves a task within the day's priority list.
// Indexes are zero-based positions in the current ordering.
type ReorderTasksCommand struct {
	UserID    uuid.UUID
	Date      sharedDomain.Date
	FromIndex int
	ToIndex   int
}

// ReorderTasksResult reports the final ordering.
type ReorderTasksResult struct {
	Moved     bool
	TaskOrder []uuid.UUID
}

// ReorderTasksHandler handles the ReorderTasksCommand.
type ReorderTasksHandler struct {
	taskRepo   domain.Repository
	outboxRepo outbox.Repository
	capacity   *services.CapacityPolicy
	uow        sharedApplication.UnitOfWork
}

// NewReorderTasksHandler creates a new ReorderTasksHandler.
func NewReorderTasksHandler(taskRepo domain.Repository, outboxRepo outbox.Repository, capacity *services.CapacityPolicy, uow sharedApplication.UnitOfWork) *ReorderTasksHandler {
	return &ReorderTasksHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		capacity:   capacity,
		uow:        uow,
	}
}

// Handle executes the ReorderTasksCommand. The read, renumber, and
// writes share one transaction so observers never see a partial order.
func (h *ReorderTasksHandler) Handle(ctx context.Context, cmd ReorderTasksCommand) (*ReorderTasksResult, error) {
	var result *ReorderTasksResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		tasks, err := h.taskRepo.FindByUserAndDate(txCtx, cmd.UserID, cmd.Date)
		if err != nil {
			return err
		}

		moved, err := h.capacity.Reorder(tasks, cmd.FromIndex, cmd.ToIndex)
		if err != nil {
			return err
		}

		order := make([]uuid.UUID, len(tasks))
		for i, task := range tasks {
			order[i] = task.ID()
		}

		if !moved {
			result = &ReorderTasksResult{Moved: false, TaskOrder: order}
			return nil
		}

		movedTask := tasks[clampIndex(cmd.ToIndex, len(tasks))]
		movedTask.AddDomainEvent(domain.NewTasksReordered(movedTask, order))

		if err := h.taskRepo.SaveAll(txCtx, tasks); err != nil {
			return err
		}
		if err := saveEvents(txCtx, h.outboxRepo, cmd.UserID, movedTask.DomainEvents()); err != nil {
			return err
		}

		result = &ReorderTasksResult{Moved: true, TaskOrder: order}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func clampIndex(i, length int) int {
	if i < 0 {
		return 0
	}
	if i >= length {
		return length - 1
	}
	return i
}
