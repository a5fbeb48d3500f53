package persistence

import (
	"context"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/focusfive/internal/tasks/domain"
	"github.com/google/uuid"
)

// PostgresTaskRepository implements domain.Repository using PostgreSQL.
type PostgresTaskRepository struct {
	conn database.Connection
}

// NewPostgresTaskRepository creates a new Postgres task repository.
func NewPostgresTaskRepository(conn database.Connection) *PostgresTaskRepository {
	return &PostgresTaskRepository{conn: conn}
}

const postgresUpsertTask = `
	INSERT INTO tasks (
		id, user_id, title, priority, completed, task_date, category,
		energy_level, estimated_minutes, actual_minutes, version,
		created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title,
		priority = EXCLUDED.priority,
		completed = EXCLUDED.completed,
		category = EXCLUDED.category,
		energy_level = EXCLUDED.energy_level,
		estimated_minutes = EXCLUDED.estimated_minutes,
		actual_minutes = EXCLUDED.actual_minutes,
		version = tasks.version + 1,
		updated_at = NOW()
`

// Save persists a task (create or update).
func (r *PostgresTaskRepository) Save(ctx context.Context, task *domain.Task) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, postgresUpsertTask,
		task.ID(),
		task.UserID(),
		task.Title(),
		task.Priority(),
		task.IsCompleted(),
		task.Date().String(),
		string(task.Category()),
		string(task.EnergyLevel()),
		task.EstimatedMinutes(),
		task.ActualMinutes(),
		task.Version()+1,
		task.CreatedAt().UTC(),
		task.UpdatedAt().UTC(),
	)
	return err
}

// SaveAll persists multiple tasks, inside the caller's transaction when
// one is present.
func (r *PostgresTaskRepository) SaveAll(ctx context.Context, tasks []*domain.Task) error {
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

const postgresSelectTask = `
	SELECT id, user_id, title, priority, completed, task_date, category,
	       energy_level, estimated_minutes, actual_minutes, version,
	       created_at, updated_at
	FROM tasks
`

// FindByID finds a task by its ID.
func (r *PostgresTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := exec.QueryRow(ctx, postgresSelectTask+" WHERE id = $1", id)

	task, err := scanPostgresTask(row)
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
func (r *PostgresTaskRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date sharedDomain.Date) ([]*domain.Task, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx,
		postgresSelectTask+" WHERE user_id = $1 AND task_date = $2 ORDER BY priority ASC",
		userID, date.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPostgresTasks(rows)
}

// CountByUserAndDate counts a user's tasks for one day.
func (r *PostgresTaskRepository) CountByUserAndDate(ctx context.Context, userID uuid.UUID, date sharedDomain.Date) (int, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := exec.QueryRow(ctx,
		"SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND task_date = $2",
		userID, date.String())

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CompletedHistory returns completed tasks ordered by date descending.
func (r *PostgresTaskRepository) CompletedHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Task, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx,
		postgresSelectTask+` WHERE user_id = $1 AND completed = TRUE
		ORDER BY task_date DESC, priority ASC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPostgresTasks(rows)
}

// CompletedSince counts completed tasks on or after the given date.
func (r *PostgresTaskRepository) CompletedSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Date) (int, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := exec.QueryRow(ctx,
		"SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND completed = TRUE AND task_date >= $2",
		userID, since.String())

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a task.
func (r *PostgresTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	return err
}

func scanPostgresTask(row rowScanner) (*domain.Task, error) {
	var (
		id, userID            uuid.UUID
		title                 string
		category, energyLevel string
		priority, estimated   int
		actual, version       int
		completed             bool
		taskDate              time.Time
		createdAt, updatedAt  time.Time
	)

	err := row.Scan(&id, &userID, &title, &priority, &completed, &taskDate,
		&category, &energyLevel, &estimated, &actual, &version,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateTask(id, userID, title, priority, completed,
		sharedDomain.DateOf(taskDate), domain.Category(category), domain.EnergyLevel(energyLevel),
		estimated, actual, version, createdAt, updatedAt), nil
}

func scanPostgresTasks(rows database.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanPostgresTask(rows)
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
