package persistence

import (
	"context"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/focusfive/internal/tasks/domain"
	"github.com/google/uuid"
)

// SQLiteTaskRepository implements domain.Repository using SQLite.
type SQLiteTaskRepository struct {
	conn database.Connection
}

// NewSQLiteTaskRepository creates a new SQLite task repository.
func NewSQLiteTaskRepository(conn database.Connection) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{conn: conn}
}

const sqliteUpsertTask = `
	INSERT INTO tasks (
		id, user_id, title, priority, completed, task_date, category,
		energy_level, estimated_minutes, actual_minutes, version,
		created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		priority = excluded.priority,
		completed = excluded.completed,
		category = excluded.category,
		energy_level = excluded.energy_level,
		estimated_minutes = excluded.estimated_minutes,
		actual_minutes = excluded.actual_minutes,
		version = tasks.version + 1,
		updated_at = excluded.updated_at
`

// Save persists a task (create or update).
func (r *SQLiteTaskRepository) Save(ctx context.Context, task *domain.Task) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, sqliteUpsertTask,
		task.ID().String(),
		task.UserID().String(),
		task.Title(),
		task.Priority(),
		boolToInt(task.IsCompleted()),
		task.Date().String(),
		string(task.Category()),
		string(task.EnergyLevel()),
		task.EstimatedMinutes(),
		task.ActualMinutes(),
		task.Version()+1,
		task.CreatedAt().UTC().Format(time.RFC3339),
		task.UpdatedAt().UTC().Format(time.RFC3339),
	)
	return err
}

// SaveAll persists multiple tasks. When called inside a unit of work the
// surrounding transaction provides atomicity; otherwise a local
// transaction is opened.
func (r *SQLiteTaskRepository) SaveAll(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	if database.TxFromContext(ctx) != nil {
		for _, task := range tasks {
			if err := r.Save(ctx, task); err != nil {
				return err
			}
		}
		return nil
	}

	tx, err := r.conn.BeginTx(ctx)
	if err != nil {
		return err
	}
	txCtx := database.WithTx(ctx, tx, true)

	for _, task := range tasks {
		if err := r.Save(txCtx, task); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
	}
	return tx.Commit(ctx)
}

const sqliteSelectTask = `
	SELECT id, user_id, title, priority, completed, task_date, category,
	       energy_level, estimated_minutes, actual_minutes, version,
	       created_at, updated_at
	FROM tasks
`

// FindByID finds a task by its ID.
func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := exec.QueryRow(ctx, sqliteSelectTask+" WHERE id = ?", id.String())

	task, err := scanSQLiteTask(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

// FindByUserAndDate finds a user's tasks for one day, ordered by
// priority ascending.
func (r *SQLiteTaskRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date sharedDomain.Date) ([]*domain.Task, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx,
		sqliteSelectTask+" WHERE user_id = ? AND task_date = ? ORDER BY priority ASC",
		userID.String(), date.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSQLiteTasks(rows)
}

// CountByUserAndDate counts a user's tasks for one day.
func (r *SQLiteTaskRepository) CountByUserAndDate(ctx context.Context, userID uuid.UUID, date sharedDomain.Date) (int, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := exec.QueryRow(ctx,
		"SELECT COUNT(*) FROM tasks WHERE user_id = ? AND task_date = ?",
		userID.String(), date.String())

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CompletedHistory returns completed tasks ordered by date descending.
func (r *SQLiteTaskRepository) CompletedHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Task, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx,
		sqliteSelectTask+` WHERE user_id = ? AND completed = 1
		ORDER BY task_date DESC, priority ASC LIMIT ?`,
		userID.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSQLiteTasks(rows)
}

// CompletedSince counts completed tasks on or after the given date.
func (r *SQLiteTaskRepository) CompletedSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Date) (int, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := exec.QueryRow(ctx,
		"SELECT COUNT(*) FROM tasks WHERE user_id = ? AND completed = 1 AND task_date >= ?",
		userID.String(), since.String())

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a task.
func (r *SQLiteTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, "DELETE FROM tasks WHERE id = ?", id.String())
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanSQLiteTask decodes one task row. SQLite stores booleans as 0/1 and
// timestamps as RFC3339 text, so decoding happens here at the boundary.
func scanSQLiteTask(row rowScanner) (*domain.Task, error) {
	var (
		id, userID, title, taskDate string
		category, energyLevel      string
		createdAt, updatedAt       string
		priority, estimated        int
		actual, version            int
		completed                  int
	)

	err := row.Scan(&id, &userID, &title, &priority, &completed, &taskDate,
		&category, &energyLevel, &estimated, &actual, &version,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	taskID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	date, err := sharedDomain.NewDate(taskDate)
	if err != nil {
		return nil, err
	}
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateTask(taskID, ownerID, title, priority, completed != 0,
		date, domain.Category(category), domain.EnergyLevel(energyLevel),
		estimated, actual, version, created, updated), nil
}

func scanSQLiteTasks(rows database.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanSQLiteTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
