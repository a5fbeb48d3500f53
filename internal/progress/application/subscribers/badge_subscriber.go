package subscribers

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/focusfive/internal/progress/application/commands"
	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/eventbus"
	tasksDomain "github.com/felixgeelhaar/focusfive/internal/tasks/domain"
)

// StreakInvalidator drops cached streaks after a completion change.
type StreakInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID, today sharedDomain.Date)
}

// BadgeSubscriber re-evaluates streaks and badges whenever a task's
// completion state changes.
type BadgeSubscriber struct {
	evaluate *commands.EvaluateBadgesHandler
	today    func(ctx context.Context, userID uuid.UUID) (sharedDomain.Date, error)
	cache    StreakInvalidator
	logger   *slog.Logger
}

// NewBadgeSubscriber creates a new badge subscriber. cache may be nil.
func NewBadgeSubscriber(
	evaluate *commands.EvaluateBadgesHandler,
	today func(ctx context.Context, userID uuid.UUID) (sharedDomain.Date, error),
	cache StreakInvalidator,
	logger *slog.Logger,
) *BadgeSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &BadgeSubscriber{
		evaluate: evaluate,
		today:    today,
		cache:    cache,
		logger:   logger,
	}
}

// EventTypes returns the event types this subscriber handles.
func (s *BadgeSubscriber) EventTypes() []string {
	return []string{
		tasksDomain.RoutingKeyTaskCompleted,
		tasksDomain.RoutingKeyTaskReopened,
		tasksDomain.RoutingKeyAdditionalTaskCompleted,
	}
}

// Handle processes an event.
func (s *BadgeSubscriber) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	userID := event.Metadata.UserID
	if userID == uuid.Nil {
		s.logger.Warn("completion event without user metadata, skipping",
			"routing_key", event.RoutingKey,
			"event_id", event.EventID)
		return nil
	}

	today, err := s.today(ctx, userID)
	if err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, userID, today)
	}

	result, err := s.evaluate.Handle(ctx, commands.EvaluateBadgesCommand{
		UserID: userID,
		Today:  today,
	})
	if err != nil {
		return err
	}

	if len(result.Awarded) > 0 {
		s.logger.Info("badges awarded",
			"user_id", userID,
			"streak", result.Streak,
			"badges", result.Awarded)
	}
	return nil
}
