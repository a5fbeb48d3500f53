package queries

import (
	"context"

	"github.com/felixgeelhaar/focusfive/internal/progress/application/services"
	"github.com/felixgeelhaar/focusfive/internal/progress/domain"
	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/google/uuid"
)

// StreakCache caches computed streaks per user and day. Implementations
// must treat misses and errors alike: the caller recomputes.
type StreakCache interface {
	Get(ctx context.Context, userID uuid.UUID, day sharedDomain.Date) (int, bool)
	Set(ctx context.Context, userID uuid.UUID, day sharedDomain.Date, streak int)
}

// GetStreakQuery contains the parameters for the streak lookup.
type GetStreakQuery struct {
	UserID uuid.UUID
	Today  sharedDomain.Date
}

// GetStreakResult carries the computed streak.
type GetStreakResult struct {
	Streak int `json:"streak"`
}

// GetStreakHandler handles the GetStreakQuery.
type GetStreakHandler struct {
	completions domain.CompletionSource
	calculator  *services.StreakCalculator
	cache       StreakCache
}

// NewGetStreakHandler creates a new GetStreakHandler. cache may be nil.
func NewGetStreakHandler(completions domain.CompletionSource, calculator *services.StreakCalculator, cache StreakCache) *GetStreakHandler {
	return &GetStreakHandler{
		completions: completions,
		calculator:  calculator,
		cache:       cache,
	}
}

// Handle executes the GetStreakQuery.
func (h *GetStreakHandler) Handle(ctx context.Context, query GetStreakQuery) (*GetStreakResult, error) {
	if h.cache != nil {
		if streak, ok := h.cache.Get(ctx, query.UserID, query.Today); ok {
			return &GetStreakResult{Streak: streak}, nil
		}
	}

	dates, err := h.completions.CompletionDates(ctx, query.UserID, services.MaxStreak+1)
	if err != nil {
		return nil, err
	}
	streak := h.calculator.Calculate(dates, query.Today)

	if h.cache != nil {
		h.cache.Set(ctx, query.UserID, query.Today, streak)
	}
	return &GetStreakResult{Streak: streak}, nil
}
