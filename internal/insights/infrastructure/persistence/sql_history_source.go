package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/focusfive/internal/insights/domain"
	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/database"
)

// SQLHistorySource implements domain.HistorySource by reading the task
// store directly. It is a read model: this context never writes the
// tasks table.
type SQLHistorySource struct {
	conn   database.Connection
	driver database.Driver
}

// NewSQLHistorySource creates a history source for the connection's driver.
func NewSQLHistorySource(conn database.Connection) *SQLHistorySource {
	return &SQLHistorySource{conn: conn, driver: conn.Driver()}
}

// RecentCompleted returns completed-task records, most recent first.
func (s *SQLHistorySource) RecentCompleted(ctx context.Context, userID uuid.UUID, limit int) ([]domain.HistoryRecord, error) {
	exec := database.ExecutorFromContext(ctx, s.conn)

	var (
		rows database.Rows
		err  error
	)
	if s.driver == database.DriverPostgres {
		rows, err = exec.Query(ctx, `
			SELECT task_date::text, category, estimated_minutes, actual_minutes FROM tasks
			WHERE user_id = $1 AND completed = TRUE
			ORDER BY task_date DESC, priority ASC LIMIT $2`,
			userID, limit)
	} else {
		rows, err = exec.Query(ctx, `
			SELECT task_date, category, estimated_minutes, actual_minutes FROM tasks
			WHERE user_id = ? AND completed = 1
			ORDER BY task_date DESC, priority ASC LIMIT ?`,
			userID.String(), limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.HistoryRecord
	for rows.Next() {
		var (
			raw    string
			record domain.HistoryRecord
		)
		if err := rows.Scan(&raw, &record.Category, &record.EstimatedMinutes, &record.ActualMinutes); err != nil {
			return nil, err
		}
		date, err := sharedDomain.NewDate(raw)
		if err != nil {
			return nil, err
		}
		record.Date = date
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// DaySummary returns the completed and total task counts for one day.
func (s *SQLHistorySource) DaySummary(ctx context.Context, userID uuid.UUID, date sharedDomain.Date) (domain.DaySummary, error) {
	exec := database.ExecutorFromContext(ctx, s.conn)

	var row database.Row
	if s.driver == database.DriverPostgres {
		row = exec.QueryRow(ctx, `
			SELECT COUNT(*) FILTER (WHERE completed), COUNT(*) FROM tasks
			WHERE user_id = $1 AND task_date = $2`,
			userID, date.String())
	} else {
		row = exec.QueryRow(ctx, `
			SELECT COALESCE(SUM(completed), 0), COUNT(*) FROM tasks
			WHERE user_id = ? AND task_date = ?`,
			userID.String(), date.String())
	}

	var summary domain.DaySummary
	if err := row.Scan(&summary.Completed, &summary.Total); err != nil {
		return domain.DaySummary{}, err
	}
	return summary, nil
}
