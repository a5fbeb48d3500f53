package queries

import (
	"context"

	"github.com/felixgeelhaar/focusfive/internal/tasks/domain"
	"github.com/google/uuid"
)

// historyLimit caps how many completed tasks the history query returns.
const historyLimit = 100

// CompletedHistoryQuery contains the parameters for the history lookup.
type CompletedHistoryQuery struct {
	UserID uuid.UUID
	Limit  int
}

// CompletedHistoryHandler handles the CompletedHistoryQuery.
type CompletedHistoryHandler struct {
	taskRepo domain.Repository
}

// NewCompletedHistoryHandler creates a new CompletedHistoryHandler.
func NewCompletedHistoryHandler(taskRepo domain.Repository) *CompletedHistoryHandler {
	return &CompletedHistoryHandler{taskRepo: taskRepo}
}

// Handle executes the CompletedHistoryQuery, returning completed tasks
// ordered by date descending.
func (h *CompletedHistoryHandler) Handle(ctx context.Context, query CompletedHistoryQuery) ([]TaskDTO, error) {
	limit := query.Limit
	if limit <= 0 || limit > historyLimit {
		limit = historyLimit
	}

	tasks, err := h.taskRepo.CompletedHistory(ctx, query.UserID, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		dtos = append(dtos, toTaskDTO(task))
	}
	return dtos, nil
}
