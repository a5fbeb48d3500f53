package database

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/retry"
	"github.com/sony/gobreaker/v2"
)

// ErrStoreUnavailable is returned when the circuit to the record store is open.
var ErrStoreUnavailable = errors.New("record store unavailable")

// GuardedConnection decorates a Connection with the shared retry policy and a
// circuit breaker, so every repository gets uniform transient-failure
// handling instead of ad hoc per-call wrappers. Transactions are not guarded:
// a transaction is one logical update and retrying inside it could commit
// half of a renumbering.
type GuardedConnection struct {
	inner   Connection
	policy  retry.Policy
	breaker *gobreaker.CircuitBreaker[any]
	logger  *slog.Logger
}

// GuardConfig configures the guarded connection.
type GuardConfig struct {
	Policy           retry.Policy
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// DefaultGuardConfig returns the defaults used for the record store.
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		Policy:           retry.DefaultPolicy(),
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
	}
}

// NewGuardedConnection wraps conn with retries and a circuit breaker.
func NewGuardedConnection(conn Connection, cfg GuardConfig, logger *slog.Logger) *GuardedConnection {
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:    "record-store",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("record store circuit state changed",
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &GuardedConnection{
		inner:   conn,
		policy:  cfg.Policy,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
		logger:  logger,
	}
}

func (g *GuardedConnection) execute(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
	var result any
	err := g.policy.Do(ctx, func(ctx context.Context) error {
		r, err := g.breaker.Execute(func() (any, error) {
			return fn(ctx)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return retry.Permanent(ErrStoreUnavailable)
		}
		if err != nil {
			// Missing rows are answers, not outages.
			if IsNoRows(err) {
				return retry.Permanent(err)
			}
			return err
		}
		result = r
		return nil
	})
	return result, err
}

// Exec executes a statement through the retry policy and breaker.
func (g *GuardedConnection) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	r, err := g.execute(ctx, func(ctx context.Context) (any, error) {
		return g.inner.Exec(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return r.(Result), nil
}

// QueryRow defers execution to Scan, so the guard wraps the scan itself.
func (g *GuardedConnection) QueryRow(ctx context.Context, query string, args ...any) Row {
	return &guardedRow{g: g, ctx: ctx, query: query, args: args}
}

// Query executes a query through the retry policy and breaker.
func (g *GuardedConnection) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	r, err := g.execute(ctx, func(ctx context.Context) (any, error) {
		return g.inner.Query(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return r.(Rows), nil
}

// BeginTx starts an unguarded transaction on the underlying connection.
func (g *GuardedConnection) BeginTx(ctx context.Context) (Transaction, error) {
	tx, err := g.execute(ctx, func(ctx context.Context) (any, error) {
		return g.inner.BeginTx(ctx)
	})
	if err != nil {
		return nil, err
	}
	return tx.(Transaction), nil
}

// Close closes the underlying connection.
func (g *GuardedConnection) Close() error { return g.inner.Close() }

// Ping verifies the underlying connection.
func (g *GuardedConnection) Ping(ctx context.Context) error { return g.inner.Ping(ctx) }

// Driver returns the underlying driver type.
func (g *GuardedConnection) Driver() Driver { return g.inner.Driver() }

type guardedRow struct {
	g     *GuardedConnection
	ctx   context.Context
	query string
	args  []any
}

func (r *guardedRow) Scan(dest ...any) error {
	_, err := r.g.execute(r.ctx, func(ctx context.Context) (any, error) {
		return nil, r.g.inner.QueryRow(ctx, r.query, r.args...).Scan(dest...)
	})
	return err
}
