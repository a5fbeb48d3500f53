package persistence

import (
	"context"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/focusfive/internal/tasks/domain"
	"github.com/google/uuid"
)

// SQLiteAdditionalTaskRepository implements domain.AdditionalRepository
// using SQLite.
type SQLiteAdditionalTaskRepository struct {
	conn database.Connection
}

// NewSQLiteAdditionalTaskRepository creates a new SQLite bonus task repository.
func NewSQLiteAdditionalTaskRepository(conn database.Connection) *SQLiteAdditionalTaskRepository {
	return &SQLiteAdditionalTaskRepository{conn: conn}
}

const sqliteUpsertAdditionalTask = `
	INSERT INTO additional_tasks (
		id, user_id, title, completed, task_date, version, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		completed = excluded.completed,
		version = additional_tasks.version + 1,
		updated_at = excluded.updated_at
`

// Save persists a bonus task (create or update).
func (r *SQLiteAdditionalTaskRepository) Save(ctx context.Context, task *domain.AdditionalTask) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, sqliteUpsertAdditionalTask,
		task.ID().String(),
		task.UserID().String(),
		task.Title(),
		boolToInt(task.IsCompleted()),
		task.Date().String(),
		task.Version()+1,
		task.CreatedAt().UTC().Format(time.RFC3339),
		task.UpdatedAt().UTC().Format(time.RFC3339),
	)
	return err
}

const sqliteSelectAdditionalTask = `
	SELECT id, user_id, title, completed, task_date, version, created_at, updated_at
	FROM additional_tasks
`

// FindByID finds a bonus task by its ID.
func (r *SQLiteAdditionalTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.AdditionalTask, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := exec.QueryRow(ctx, sqliteSelectAdditionalTask+" WHERE id = ?", id.String())

	task, err := scanSQLiteAdditionalTask(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

// FindByUserAndDate finds a user's bonus tasks for one day, oldest first.
func (r *SQLiteAdditionalTaskRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date sharedDomain.Date) ([]*domain.AdditionalTask, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx,
		sqliteSelectAdditionalTask+" WHERE user_id = ? AND task_date = ? ORDER BY created_at ASC, rowid ASC",
		userID.String(), date.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*domain.AdditionalTask
	for rows.Next() {
		task, err := scanSQLiteAdditionalTask(rows)
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
func (r *SQLiteAdditionalTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, "DELETE FROM additional_tasks WHERE id = ?", id.String())
	return err
}

func scanSQLiteAdditionalTask(row rowScanner) (*domain.AdditionalTask, error) {
	var (
		id, userID, title, taskDate string
		createdAt, updatedAt        string
		completed, version          int
	)

	err := row.Scan(&id, &userID, &title, &completed, &taskDate, &version,
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

	return domain.RehydrateAdditionalTask(taskID, ownerID, title,
		completed != 0, date, version, created, updated), nil
}
