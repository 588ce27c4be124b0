package task

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tasktango/backend/domain"
	"github.com/tasktango/backend/repository"
)

// memTaskRepo is an in-memory TaskRepository for tests. It mirrors the
// store semantics the usecase relies on: UpdateStage is atomic over the
// task row and the history log.
type memTaskRepo struct {
	mu      sync.Mutex
	tasks   map[string]domain.Task
	history []domain.StageEntry

	failWith error
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: map[string]domain.Task{}}
}

func (r *memTaskRepo) seed(task domain.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = task
}

func (r *memTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r *memTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []domain.Task
	for _, task := range r.tasks {
		if !filter.AllUsers && task.UserID != filter.UserID {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (r *memTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	r.tasks[task.ID] = *task
	return task, nil
}

func (r *memTaskRepo) Update(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	task.UpdatedAt = time.Now()
	r.tasks[task.ID] = *task
	return nil
}

func (r *memTaskRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *memTaskRepo) UpdateStage(ctx context.Context, entry *domain.StageEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	task, ok := r.tasks[entry.TaskID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.TaskName = task.Title
	entry.UpdatedAt = time.Now()

	task.Stage = entry.NewStage
	task.UpdatedAt = entry.UpdatedAt
	r.tasks[entry.TaskID] = task
	r.history = append(r.history, *entry)
	return nil
}

func (r *memTaskRepo) historyFor(taskID string) []domain.StageEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.StageEntry
	for _, e := range r.history {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	return out
}

type memStageRepo struct {
	tasks *memTaskRepo
}

func (r *memStageRepo) ListByTask(ctx context.Context, taskID string) ([]domain.StageEntry, error) {
	return r.tasks.historyFor(taskID), nil
}

func (r *memStageRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.StageEntry, error) {
	r.tasks.mu.Lock()
	defer r.tasks.mu.Unlock()
	var out []domain.StageEntry
	// newest first, like the store
	for i := len(r.tasks.history) - 1; i >= 0; i-- {
		e := r.tasks.history[i]
		if e.UserID != userID {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
