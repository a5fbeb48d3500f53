package commands

import (
	"context"
	"errors"

	sharedApplication "github.com/felixgeelhaar/focusfive/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// ErrTaskNotFound is returned when a task does not exist or belongs to
// another user.
var ErrTaskNotFound = errors.New("task not found")

// saveEvents stamps metadata on domain events and writes them to the
// outbox within the caller's transaction.
func saveEvents(ctx context.Context, repo outbox.Repository, userID uuid.UUID, events []sharedDomain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(userID))

	msgs := make([]*outbox.Message, 0, len(events))
	for _, event := range events {
		msg, err := outbox.NewMessage(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return repo.SaveBatch(ctx, msgs)
}
