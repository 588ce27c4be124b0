package admin

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tasktango/backend/domain"
	"github.com/tasktango/backend/repository"
	"github.com/tasktango/backend/taskview"
)

// UseCase serves the administrator's aggregate view over every user's
// tasks.
type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// Overview returns all tasks in the store, filtered and partitioned by
// owner. Only administrators may call it.
func (uc *UseCase) Overview(ctx context.Context, actor domain.Identity, filter taskview.Filter, now time.Time) ([]taskview.Group, error) {
	if !actor.Admin {
		return nil, domain.ErrForbidden
	}
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{AllUsers: true})
	if err != nil {
		return nil, err
	}
	return taskview.GroupByOwner(taskview.Apply(tasks, filter, now)), nil
}
