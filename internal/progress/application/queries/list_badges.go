package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/focusfive/internal/progress/domain"
	"github.com/google/uuid"
)

// BadgeDTO is the read model for an earned badge.
type BadgeDTO struct {
	ID       uuid.UUID `json:"id"`
	Type     string    `json:"type"`
	EarnedAt time.Time `json:"earned_at"`
}

// ListBadgesQuery contains the parameters for listing a user's badges.
type ListBadgesQuery struct {
	UserID uuid.UUID
}

// ListBadgesHandler handles the ListBadgesQuery.
type ListBadgesHandler struct {
	badgeRepo domain.Repository
}

// NewListBadgesHandler creates a new ListBadgesHandler.
func NewListBadgesHandler(badgeRepo domain.Repository) *ListBadgesHandler {
	return &ListBadgesHandler{badgeRepo: badgeRepo}
}

// Handle executes the ListBadgesQuery.
func (h *ListBadgesHandler) Handle(ctx context.Context, query ListBadgesQuery) ([]BadgeDTO, error) {
	badges, err := h.badgeRepo.FindByUser(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	dtos := make([]BadgeDTO, 0, len(badges))
	for _, badge := range badges {
		dtos = append(dtos, BadgeDTO{
			ID:       badge.ID(),
			Type:     string(badge.Type()),
			EarnedAt: badge.EarnedAt(),
		})
	}
	return dtos, nil
}
