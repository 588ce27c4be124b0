package repository

import (
	"context"

	"github.com/tasktango/backend/domain"
)

// TaskFilter narrows store-side task listing. Zero values skip the
// predicate; AllUsers lifts the per-owner restriction for admin reads.
// Listing is unpaged: the view layer aggregates over the full result, so
// a store-side cap would silently drop records from the views.
type TaskFilter struct {
	UserID   string
	AllUsers bool
	Stage    domain.Stage
	Priority domain.Priority
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
	// UpdateStage moves the task between board columns and appends the
	// matching history entry in one atomic commit. Either both writes land
	// or neither does.
	UpdateStage(ctx context.Context, entry *domain.StageEntry) error
}
