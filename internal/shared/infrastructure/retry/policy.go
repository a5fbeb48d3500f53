// Package retry provides the single backoff policy applied by the
// store-access layer, so transient-failure handling is not duplicated
// per call site.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/convert"
)

// Policy describes bounded retries with exponential backoff and full jitter.
type Policy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// BaseDelay is the delay before the first retry; it doubles per attempt.
	BaseDelay time.Duration

	// MaxDelay caps the computed backoff.
	MaxDelay time.Duration
}

// DefaultPolicy returns the policy used for record-store calls.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 4,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    5 * time.Second,
	}
}

// permanentError marks an error that must not be retried.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps an error so Do fails immediately instead of retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent returns true if the error was marked with Permanent.
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

// Backoff returns the delay before the given retry (1-based), with full
// jitter: a uniform draw from [0, capped exponential backoff].
func (p Policy) Backoff(retry int) time.Duration {
	base := p.BaseDelay
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	max := p.MaxDelay
	if max <= 0 {
		max = 5 * time.Second
	}
	if retry < 1 {
		retry = 1
	}

	backoff := base * time.Duration(1<<convert.IntToUintSafe(retry-1))
	if backoff > max || backoff <= 0 {
		backoff = max
	}
	return time.Duration(rand.Int63n(int64(backoff) + 1))
}

// Do runs fn up to MaxAttempts times, sleeping the jittered backoff between
// tries. It stops early on success, on a Permanent error, or when the context
// is cancelled. Exhaustion returns the last error.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if IsPermanent(lastErr) {
			var pe *permanentError
			errors.As(lastErr, &pe)
			return pe.err
		}
		if attempt == attempts {
			break
		}

		timer := time.NewTimer(p.Backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}
