package repository

import (
	"context"

	"github.com/tasktango/backend/domain"
)

// StageHistoryRepository reads the append-only transition log. Writes
// happen only through TaskRepository.UpdateStage so history and task state
// can never diverge.
type StageHistoryRepository interface {
	ListByTask(ctx context.Context, taskID string) ([]domain.StageEntry, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.StageEntry, error)
}
