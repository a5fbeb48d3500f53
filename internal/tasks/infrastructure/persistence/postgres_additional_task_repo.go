package persistence

import (
	"context"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/focusfive/internal/tasks/domain"
	"github.com/google/uuid"
)

// PostgresAdditionalTaskRepository implements domain.AdditionalRepository
// using PostgreSQL.
type PostgresAdditionalTaskRepository struct {
	conn database.Connection
}

// NewPostgresAdditionalTaskRepository creates a new Postgres bonus task repository.
func NewPostgresAdditionalTaskRepository(conn database.Connection) *PostgresAdditionalTaskRepository {
	return &PostgresAdditionalTaskRepository{conn: conn}
}

const postgresUpsertAdditionalTask = `
	INSERT INTO additional_tasks (
		id, user_id, title, completed, task_date, version, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title,
		completed = EXCLUDED.completed,
		version = additional_tasks.version + 1,
		updated_at = NOW()
`

// Save persists a bonus task (create or update).
func (r *PostgresAdditionalTaskRepository) Save(ctx context.Context, task *domain.AdditionalTask) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, postgresUpsertAdditionalTask,
		task.ID(),
		task.UserID(),
		task.Title(),
		task.IsCompleted(),
		task.Date().String(),
		task.Version()+1,
		task.CreatedAt().UTC(),
		task.UpdatedAt().UTC(),
	)
	return err
}

const postgresSelectAdditionalTask = `
	SELECT id, user_id, title, completed, task_date, version, created_at, updated_at
	FROM additional_tasks
`

// FindByID finds a bonus task by its ID.
func (r *PostgresAdditionalTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.AdditionalTask, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := exec.QueryRow(ctx, postgresSelectAdditionalTask+" WHERE id = $1", id)

	task, err := scanPostgresAdditionalTask(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

// FindByUserAndDate finds a user's bonus tasks for one day, oldest first.
func (r *PostgresAdditionalTaskRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date sharedDomain.Date) ([]*domain.AdditionalTask, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx,
		postgresSelectAdditionalTask+" WHERE user_id = $1 AND task_date = $2 ORDER BY created_at ASC",
		userID, date.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*domain.AdditionalTask
	for rows.Next() {
		task, err := scanPostgresAdditionalTask(rows)
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

// Delete removes a bonus task.
func (r *PostgresAdditionalTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, "DELETE FROM additional_tasks WHERE id = $1", id)
	return err
}

func scanPostgresAdditionalTask(row rowScanner) (*domain.AdditionalTask, error) {
	var (
		id, userID           uuid.UUID
		title                string
		completed            bool
		version              int
		taskDate             time.Time
		createdAt, updatedAt time.Time
	)

	err := row.Scan(&id, &userID, &title, &completed, &taskDate, &version,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateAdditionalTask(id, userID, title, completed,
		sharedDomain.DateOf(taskDate), version, createdAt, updatedAt), nil
}
