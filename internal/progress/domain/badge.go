package domain

import (
	"encoding/json"
	"errors"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrBadgeInvalidType   = errors.New("invalid badge type")
	ErrBadgeAlreadyEarned = errors.New("badge already earned")
)

// BadgeType identifies an achievement in the catalog.
type BadgeType string

const (
	BadgeStreak3    BadgeType = "streak_3"
	BadgeStreak7    BadgeType = "streak_7"
	BadgeStreak14   BadgeType = "streak_14"
	BadgeStreak30   BadgeType = "streak_30"
	BadgeWeeklyGoal BadgeType = "weekly_goal"
)

// Catalog returns every badge type in evaluation order.
func Catalog() []BadgeType {
	return []BadgeType{BadgeStreak3, BadgeStreak7, BadgeStreak14, BadgeStreak30, BadgeWeeklyGoal}
}

// IsValid checks if the badge type is in the catalog.
func (b BadgeType) IsValid() bool {
	switch b {
	case BadgeStreak3, BadgeStreak7, BadgeStreak14, BadgeStreak30, BadgeWeeklyGoal:
		return true
	default:
		return false
	}
}

// Badge records an achievement a user has earned. A user holds at most
// one badge per type.
type Badge struct {
	sharedDomain.BaseAggregateRoot
	userID    uuid.UUID
	badgeType BadgeType
	earnedAt  time.Time
	data      json.RawMessage
}

// NewBadge awards a badge. data carries a snapshot of the numbers that
// earned it (streak length, completion counts).
func NewBadge(userID uuid.UUID, badgeType BadgeType, earnedAt time.Time, data json.RawMessage) (*Badge, error) {
	if !badgeType.IsValid() {
		return nil, ErrBadgeInvalidType
	}

	badge := &Badge{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		badgeType:         badgeType,
		earnedAt:          earnedAt,
		data:              data,
	}

	badge.AddDomainEvent(NewBadgeEarned(badge))

	return badge, nil
}

// Getters
func (b *Badge) UserID() uuid.UUID    { return b.userID }
func (b *Badge) Type() BadgeType      { return b.badgeType }
func (b *Badge) EarnedAt() time.Time  { return b.earnedAt }
func (b *Badge) Data() json.RawMessage { return b.data }

// RehydrateBadge recreates a badge from persisted state without
// generating events.
func RehydrateBadge(
	id uuid.UUID,
	userID uuid.UUID,
	badgeType BadgeType,
	earnedAt time.Time,
	data json.RawMessage,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) *Badge {
	baseEntity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	baseAggregate := sharedDomain.RehydrateBaseAggregateRoot(baseEntity, version)

	return &Badge{
		BaseAggregateRoot: baseAggregate,
		userID:            userID,
		badgeType:         badgeType,
		earnedAt:          earnedAt,
		data:              data,
	}
}
