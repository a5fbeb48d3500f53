package outbox

import (
	"context"
	"time"
)

// Repository persists outbox messages. Saves happen inside the same
// transaction as the state change that produced the events.
type Repository interface {
	// Save stores one message.
	Save(ctx context.Context, msg *Message) error

	// SaveBatch stores several messages atomically.
	SaveBatch(ctx context.Context, msgs []*Message) error

	// GetUnpublished returns pending messages in creation order, skipping
	// ones whose retry time has not arrived.
	GetUnpublished(ctx context.Context, limit int) ([]*Message, error)

	// MarkPublished records a successful publish.
	MarkPublished(ctx context.Context, id int64) error

	// MarkFailed records a publish failure and schedules the next attempt.
	MarkFailed(ctx context.Context, id int64, err string, nextRetryAt time.Time) error

	// MarkDead parks a message that exhausted its retries.
	MarkDead(ctx context.Context, id int64, reason string) error

	// GetFailed returns failed messages still within the retry budget.
	GetFailed(ctx context.Context, maxRetries, limit int) ([]*Message, error)

	// DeleteOld prunes published messages past the retention window.
	DeleteOld(ctx context.Context, olderThanDays int) (int64, error)
}
