package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	aggregateType = "Badge"

	RoutingKeyBadgeEarned = "progress.badge.earned"
)

// BadgeEarned is emitted when a badge is awarded.
type BadgeEarned struct {
	sharedDomain.BaseEvent
	BadgeID   uuid.UUID `json:"badge_id"`
	UserID    uuid.UUID `json:"user_id"`
	BadgeType string    `json:"badge_type"`
	EarnedAt  time.Time `json:"earned_at"`
}

// NewBadgeEarned creates a BadgeEarned event.
func NewBadgeEarned(b *Badge) *BadgeEarned {
	return &BadgeEarned{
		BaseEvent: sharedDomain.NewBaseEvent(b.ID(), aggregateType, RoutingKeyBadgeEarned),
		BadgeID:   b.ID(),
		UserID:    b.UserID(),
		BadgeType: string(b.Type()),
		EarnedAt:  b.EarnedAt(),
	}
}
