package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tasktango/backend/domain"
	"github.com/tasktango/backend/repository"
)

const taskColumns = `id, user_id, user_email, title, description, priority, stage,
	due_date, customer_interaction, customer_name, created_at, updated_at`

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE ($1 OR user_id = $2)
	  AND ($3 = '' OR stage = $3)
	  AND ($4 = '' OR priority = $4)
	ORDER BY due_date ASC
	`
	rows, err := r.pool.Query(ctx, query,
		filter.AllUsers,
		filter.UserID,
		string(filter.Stage),
		string(filter.Priority),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, user_id, user_email, title, description, priority, stage,
		due_date, customer_interaction, customer_name)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.UserEmail,
		task.Title,
		task.Description,
		string(task.Priority),
		string(task.Stage),
		task.DueDate,
		task.CustomerInteraction,
		task.CustomerName,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	// id, user_id, user_email and created_at are immutable by design.
	const query = `
	UPDATE tasks
	SET title = $2,
		description = $3,
		priority = $4,
		stage = $5,
		due_date = $6,
		customer_interaction = $7,
		customer_name = $8,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Priority),
		string(task.Stage),
		task.DueDate,
		task.CustomerInteraction,
		task.CustomerName,
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// UpdateStage performs the stage move and the history append inside one
// transaction. A failure at any point rolls the whole commit back, so the
// stored stage and the history log can never disagree.
func (r *taskRepository) UpdateStage(ctx context.Context, entry *domain.StageEntry) error {
	if entry == nil || entry.TaskID == "" {
		return domain.ErrInvalidPayload
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const updateQuery = `
	UPDATE tasks
	SET stage = $2, updated_at = NOW()
	WHERE id = $1
	RETURNING title
	`
	if err := tx.QueryRow(ctx, updateQuery, entry.TaskID, string(entry.NewStage)).Scan(&entry.TaskName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	const insertQuery = `
	INSERT INTO task_stages (id, task_id, task_name, previous_stage, new_stage, user_id, user_email)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING updated_at
	`
	if err := tx.QueryRow(ctx, insertQuery,
		entry.ID,
		entry.TaskID,
		entry.TaskName,
		string(entry.PreviousStage),
		string(entry.NewStage),
		entry.UserID,
		entry.UserEmail,
	).Scan(&entry.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var priority, stage string

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.UserEmail,
		&task.Title,
		&task.Description,
		&priority,
		&stage,
		&task.DueDate,
		&task.CustomerInteraction,
		&task.CustomerName,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Priority = domain.Priority(priority)
	task.Stage = domain.Stage(stage)
	return &task, nil
}
