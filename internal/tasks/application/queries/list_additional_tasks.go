package queries

import (
	"context"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/felixgeelhaar/focusfive/internal/tasks/domain"
	"github.com/google/uuid"
)

// AdditionalTaskDTO is the read model for a bonus task.
type AdditionalTaskDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// ListAdditionalTasksQuery contains the parameters for listing a day's
// bonus tasks.
type ListAdditionalTasksQuery struct {
	UserID uuid.UUID
	Date   sharedDomain.Date
}

// ListAdditionalTasksHandler handles the ListAdditionalTasksQuery.
type ListAdditionalTasksHandler struct {
	repo domain.AdditionalRepository
}

// NewListAdditionalTasksHandler creates a new ListAdditionalTasksHandler.
func NewListAdditionalTasksHandler(repo domain.AdditionalRepository) *ListAdditionalTasksHandler {
	return &ListAdditionalTasksHandler{repo: repo}
}

// Handle executes the ListAdditionalTasksQuery.
func (h *ListAdditionalTasksHandler) Handle(ctx context.Context, query ListAdditionalTasksQuery) ([]AdditionalTaskDTO, error) {
	tasks, err := h.repo.FindByUserAndDate(ctx, query.UserID, query.Date)
	if err != nil {
		return nil, err
	}

	dtos := make([]AdditionalTaskDTO, 0, len(tasks))
	for _, task := range tasks {
		dtos = append(dtos, AdditionalTaskDTO{
			ID:        task.ID(),
			Title:     task.Title(),
			Completed: task.IsCompleted(),
			Date:      task.Date().String(),
			CreatedAt: task.CreatedAt(),
		})
	}
	return dtos, nil
}
