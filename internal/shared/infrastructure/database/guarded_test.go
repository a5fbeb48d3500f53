package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyConn fails a configurable number of times before succeeding.
type flakyConn struct {
	failures int
	calls    int
}

func (c *flakyConn) attempt() error {
	c.calls++
	if c.calls <= c.failures {
		return errors.New("temporarily unavailable")
	}
	return nil
}

func (c *flakyConn) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	if err := c.attempt(); err != nil {
		return nil, err
	}
	return &fakeResult{}, nil
}

func (c *flakyConn) QueryRow(ctx context.Context, query string, args ...any) Row {
	return &fakeRow{conn: c}
}

func (c *flakyConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	if err := c.attempt(); err != nil {
		return nil, err
	}
	return &fakeRows{}, nil
}

func (c *flakyConn) BeginTx(ctx context.Context) (Transaction, error) {
	return nil, errors.New("not implemented")
}

func (c *flakyConn) Close() error                   { return nil }
func (c *flakyConn) Ping(ctx context.Context) error { return nil }
func (c *flakyConn) Driver() Driver                 { return DriverSQLite }

type fakeResult struct{}

func (fakeResult) RowsAffected() (int64, error) { return 1, nil }
func (fakeResult) LastInsertId() (int64, error) { return 1, nil }

type fakeRow struct{ conn *flakyConn }

func (r *fakeRow) Scan(dest ...any) error { return r.conn.attempt() }

type fakeRows struct{}

func (fakeRows) Next() bool            { return false }
func (fakeRows) Scan(dest ...any) error { return nil }
func (fakeRows) Close() error          { return nil }
func (fakeRows) Err() error            { return nil }

func testGuardConfig() GuardConfig {
	return GuardConfig{
		Policy:           retry.Policy{MaxAttempts: 4, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond},
		FailureThreshold: 100, // keep the breaker closed for retry tests
		OpenTimeout:      time.Second,
	}
}

func TestGuardedConnection_RetriesTransientFailures(t *testing.T) {
	conn := &flakyConn{failures: 2}
	guarded := NewGuardedConnection(conn, testGuardConfig(), nil)

	_, err := guarded.Exec(context.Background(), "UPDATE tasks SET completed = 1")

	require.NoError(t, err)
	assert.Equal(t, 3, conn.calls)
}

func TestGuardedConnection_ExhaustionSurfacesLastError(t *testing.T) {
	conn := &flakyConn{failures: 10}
	guarded := NewGuardedConnection(conn, testGuardConfig(), nil)

	_, err := guarded.Query(context.Background(), "SELECT 1")

	require.Error(t, err)
	assert.Equal(t, 4, conn.calls)
}

func TestGuardedConnection_QueryRowRetriesScan(t *testing.T) {
	conn := &flakyConn{failures: 1}
	guarded := NewGuardedConnection(conn, testGuardConfig(), nil)

	var dest int
	err := guarded.QueryRow(context.Background(), "SELECT 1").Scan(&dest)

	require.NoError(t, err)
	assert.Equal(t, 2, conn.calls)
}

func TestGuardedConnection_NoRowsIsNotRetried(t *testing.T) {
	conn := &noRowsConn{}
	guarded := NewGuardedConnection(conn, testGuardConfig(), nil)

	var dest int
	err := guarded.QueryRow(context.Background(), "SELECT 1").Scan(&dest)

	assert.True(t, IsNoRows(err))
	assert.Equal(t, 1, conn.calls)
}

func TestGuardedConnection_OpenBreakerFailsFast(t *testing.T) {
	conn := &flakyConn{failures: 1000}
	cfg := testGuardConfig()
	cfg.FailureThreshold = 2
	guarded := NewGuardedConnection(conn, cfg, nil)

	// Trip the breaker.
	_, _ = guarded.Query(context.Background(), "SELECT 1")

	callsBefore := conn.calls
	_, err := guarded.Query(context.Background(), "SELECT 1")

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, callsBefore, conn.calls)
}

type noRowsConn struct {
	flakyConn
	calls int
}

func (c *noRowsConn) QueryRow(ctx context.Context, query string, args ...any) Row {
	return &noRowsRow{conn: c}
}

type noRowsRow struct{ conn *noRowsConn }

func (r *noRowsRow) Scan(dest ...any) error {
	r.conn.calls++
	return ErrNoRows
}
