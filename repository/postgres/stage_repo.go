package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tasktango/backend/domain"
	"github.com/tasktango/backend/repository"
)

const stageColumns = `id, task_id, task_name, previous_stage, new_stage, user_id, user_email, updated_at`

type stageRepository struct {
	pool *pgxpool.Pool
}

// NewStageHistoryRepository returns the read side of the task_stages log.
func NewStageHistoryRepository(pool *pgxpool.Pool) repository.StageHistoryRepository {
	return &stageRepository{pool: pool}
}

func (r *stageRepository) ListByTask(ctx context.Context, taskID string) ([]domain.StageEntry, error) {
	const query = `
	SELECT ` + stageColumns + `
	FROM task_stages
	WHERE task_id = $1
	ORDER BY updated_at ASC
	`
	rows, err := r.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *stageRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.StageEntry, error) {
	const query = `
	SELECT ` + stageColumns + `
	FROM task_stages
	WHERE user_id = $1
	ORDER BY updated_at DESC
	LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]domain.StageEntry, error) {
	var entries []domain.StageEntry
	for rows.Next() {
		var entry domain.StageEntry
		var prev, next string
		if err := rows.Scan(
			&entry.ID,
			&entry.TaskID,
			&entry.TaskName,
			&prev,
			&next,
			&entry.UserID,
			&entry.UserEmail,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entry.PreviousStage = domain.Stage(prev)
		entry.NewStage = domain.Stage(next)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
