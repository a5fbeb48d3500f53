package persistence

import (
	"context"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// SQLCompletionSource implements domain.CompletionSource by reading the
// task store directly. It is a read model: this context never writes
// the tasks table.
type SQLCompletionSource struct {
	conn   database.Connection
	driver database.Driver
}

// NewSQLCompletionSource creates a completion source for the connection's driver.
func NewSQLCompletionSource(conn database.Connection) *SQLCompletionSource {
	return &SQLCompletionSource{conn: conn, driver: conn.Driver()}
}

// CompletionDates returns the distinct dates with at least one completed
// task, newest first.
func (s *SQLCompletionSource) CompletionDates(ctx context.Context, userID uuid.UUID, limit int) ([]sharedDomain.Date, error) {
	exec := database.ExecutorFromContext(ctx, s.conn)

	var (
		rows database.Rows
		err  error
	)
	if s.driver == database.DriverPostgres {
		rows, err = exec.Query(ctx, `
			SELECT DISTINCT task_date::text FROM tasks
			WHERE user_id = $1 AND completed = TRUE
			ORDER BY task_date::text DESC LIMIT $2`,
			userID, limit)
	} else {
		rows, err = exec.Query(ctx, `
			SELECT DISTINCT task_date FROM tasks
			WHERE user_id = ? AND completed = 1
			ORDER BY task_date DESC LIMIT ?`,
			userID.String(), limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []sharedDomain.Date
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		date, err := sharedDomain.NewDate(raw)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dates, nil
}

// CompletedSince counts completed tasks on or after the given date.
func (s *SQLCompletionSource) CompletedSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Date) (int, error) {
	exec := database.ExecutorFromContext(ctx, s.conn)

	var row database.Row
	if s.driver == database.DriverPostgres {
		row = exec.QueryRow(ctx,
			"SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND completed = TRUE AND task_date >= $2",
			userID, since.String())
	} else {
		row = exec.QueryRow(ctx,
			"SELECT COUNT(*) FROM tasks WHERE user_id = ? AND completed = 1 AND task_date >= ?",
			userID.String(), since.String())
	}

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ActiveUsers returns every user with at least one task on record. The
// rollover job walks this list to re-evaluate badges once per day.
func (s *SQLCompletionSource) ActiveUsers(ctx context.Context) ([]uuid.UUID, error) {
	exec := database.ExecutorFromContext(ctx, s.conn)

	rows, err := exec.Query(ctx, "SELECT DISTINCT user_id FROM tasks")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []uuid.UUID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		users = append(users, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
