package commands

import (
	"context"
	"encoding/json"
	"time"

	"github.com/felixgeelhaar/focusfive/internal/progress/application/services"
	"github.com/felixgeelhaar/focusfive/internal/progress/domain"
	sharedApplication "github.com/felixgeelhaar/focusfive/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// completionWindow bounds how much history the streak walk loads.
// One year plus slack covers the longest streak the calculator counts.
const completionWindow = services.MaxStreak + 1

// EvaluateBadgesCommand recomputes the user's streak and awards any
// badges newly earned.
type EvaluateBadgesCommand struct {
	UserID uuid.UUID
	Today  sharedDomain.Date
}

// EvaluateBadgesResult reports the streak and new badges.
type EvaluateBadgesResult struct {
	Streak  int
	Awarded []domain.BadgeType
}

// EvaluateBadgesHandler handles the EvaluateBadgesCommand.
type EvaluateBadgesHandler struct {
	badgeRepo   domain.Repository
	completions domain.CompletionSource
	goals       domain.WeeklyGoalSource
	outboxRepo  outbox.Repository
	calculator  *services.StreakCalculator
	evaluator   *services.BadgeEvaluator
	uow         sharedApplication.UnitOfWork
	now         func() time.Time
}

// NewEvaluateBadgesHandler creates a new EvaluateBadgesHandler.
func NewEvaluateBadgesHandler(
	badgeRepo domain.Repository,
	completions domain.CompletionSource,
	goals domain.WeeklyGoalSource,
	outboxRepo outbox.Repository,
	calculator *services.StreakCalculator,
	evaluator *services.BadgeEvaluator,
	uow sharedApplication.UnitOfWork,
) *EvaluateBadgesHandler {
	return &EvaluateBadgesHandler{
		badgeRepo:   badgeRepo,
		completions: completions,
		goals:       goals,
		outboxRepo:  outboxRepo,
		calculator:  calculator,
		evaluator:   evaluator,
		uow:         uow,
		now:         time.Now,
	}
}

// badgeData is the snapshot stored with each awarded badge.
type badgeData struct {
	Streak          int    `json:"streak"`
	WeeklyCompleted int    `json:"weekly_completed"`
	WeeklyGoal      int    `json:"weekly_goal"`
	EvaluatedOn     string `json:"evaluated_on"`
}

// Handle executes the EvaluateBadgesCommand. Evaluation is idempotent:
// already-held badges are skipped, so re-running after a crash or a
// duplicate trigger awards nothing extra.
func (h *EvaluateBadgesHandler) Handle(ctx context.Context, cmd EvaluateBadgesCommand) (*EvaluateBadgesResult, error) {
	dates, err := h.completions.CompletionDates(ctx, cmd.UserID, completionWindow)
	if err != nil {
		return nil, err
	}
	streak := h.calculator.Calculate(dates, cmd.Today)

	weekStart := cmd.Today.AddDays(-6)
	weeklyCompleted, err := h.completions.CompletedSince(ctx, cmd.UserID, weekStart)
	if err != nil {
		return nil, err
	}
	weeklyGoal, err := h.goals.WeeklyGoal(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	var result *EvaluateBadgesResult

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		earned, err := h.badgeRepo.TypesByUser(txCtx, cmd.UserID)
		if err != nil {
			return err
		}

		awarded := h.evaluator.Evaluate(services.EvaluationInput{
			Streak:          streak,
			WeeklyCompleted: weeklyCompleted,
			WeeklyGoal:      weeklyGoal,
		}, earned)

		data, err := json.Marshal(badgeData{
			Streak:          streak,
			WeeklyCompleted: weeklyCompleted,
			WeeklyGoal:      weeklyGoal,
			EvaluatedOn:     cmd.Today.String(),
		})
		if err != nil {
			return err
		}

		earnedAt := h.now()
		for _, badgeType := range awarded {
			badge, err := domain.NewBadge(cmd.UserID, badgeType, earnedAt, data)
			if err != nil {
				return err
			}
			if err := h.badgeRepo.Save(txCtx, badge); err != nil {
				return err
			}

			events := badge.DomainEvents()
			sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(cmd.UserID))
			msgs := make([]*outbox.Message, 0, len(events))
			for _, event := range events {
				msg, err := outbox.NewMessage(event)
				if err != nil {
					return err
				}
				msgs = append(msgs, msg)
			}
			if err := h.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
				return err
			}
		}

		result = &EvaluateBadgesResult{Streak: streak, Awarded: awarded}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
