package commands

import (
	"context"

	sharedApplication "github.com/felixgeelhaar/focusfive/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/focusfive/internal/tasks/domain"
	"github.com/google/uuid"
)

// CreateAdditionalTaskCommand creates a bonus task outside the daily
// priority list. No capacity check applies.
type CreateAdditionalTaskCommand struct {
	UserID uuid.UUID
	Title  string
	Date   sharedDomain.Date
}

// CreateAdditionalTaskResult contains the result of creating a bonus task.
type CreateAdditionalTaskResult struct {
	TaskID uuid.UUID
}

// CreateAdditionalTaskHandler handles the CreateAdditionalTaskCommand.
type CreateAdditionalTaskHandler struct {
	repo       domain.AdditionalRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCreateAdditionalTaskHandler creates a new CreateAdditionalTaskHandler.
func NewCreateAdditionalTaskHandler(repo domain.AdditionalRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateAdditionalTaskHandler {
	return &CreateAdditionalTaskHandler{repo: repo, outboxRepo: outboxRepo, uow: uow}
}

// Handle executes the CreateAdditionalTaskCommand.
func (h *CreateAdditionalTaskHandler) Handle(ctx context.Context, cmd CreateAdditionalTaskCommand) (*CreateAdditionalTaskResult, error) {
	var result *CreateAdditionalTaskResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		task, err := domain.NewAdditionalTask(cmd.UserID, cmd.Title, cmd.Date)
		if err != nil {
			return err
		}

		if err := h.repo.Save(txCtx, task); err != nil {
			return err
		}
		if err := saveEvents(txCtx, h.outboxRepo, cmd.UserID, task.DomainEvents()); err != nil {
			return err
		}

		result = &CreateAdditionalTaskResult{TaskID: task.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ToggleAdditionalTaskCommand flips a bonus task's completion state.
type ToggleAdditionalTaskCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

// ToggleAdditionalTaskResult reports the new completion state.
type ToggleAdditionalTaskResult struct {
	Completed bool
}

// ToggleAdditionalTaskHandler handles the ToggleAdditionalTaskCommand.
type ToggleAdditionalTaskHandler struct {
	repo       domain.AdditionalRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewToggleAdditionalTaskHandler creates a new ToggleAdditionalTaskHandler.
func NewToggleAdditionalTaskHandler(repo domain.AdditionalRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *ToggleAdditionalTaskHandler {
	return &ToggleAdditionalTaskHandler{repo: repo, outboxRepo: outboxRepo, uow: uow}
}

// Handle executes the ToggleAdditionalTaskCommand.
func (h *ToggleAdditionalTaskHandler) Handle(ctx context.Context, cmd ToggleAdditionalTaskCommand) (*ToggleAdditionalTaskResult, error) {
	var result *ToggleAdditionalTaskResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		task, err := h.repo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}
		if task == nil || task.UserID() != cmd.UserID {
			return ErrTaskNotFound
		}

		completed := task.Toggle()

		if err := h.repo.Save(txCtx, task); err != nil {
			return err
		}
		if err := saveEvents(txCtx, h.outboxRepo, cmd.UserID, task.DomainEvents()); err != nil {
			return err
		}

		result = &ToggleAdditionalTaskResult{Completed: completed}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
