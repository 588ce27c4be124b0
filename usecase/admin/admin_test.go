package admin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tasktango/backend/domain"
	"github.com/tasktango/backend/repository"
	"github.com/tasktango/backend/taskview"
)

type stubTaskRepo struct {
	tasks      []domain.Task
	lastFilter repository.TaskFilter
}

func (r *stubTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (r *stubTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	r.lastFilter = filter
	return r.tasks, nil
}

func (r *stubTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return task, nil
}

func (r *stubTaskRepo) Update(ctx context.Context, task *domain.Task) error { return nil }
func (r *stubTaskRepo) Delete(ctx context.Context, id string) error         { return nil }
func (r *stubTaskRepo) UpdateStage(ctx context.Context, entry *domain.StageEntry) error {
	return nil
}

func adminTask(id, email string, stage domain.Stage, due time.Time) domain.Task {
	return domain.Task{
		ID:        id,
		UserID:    "u-" + email,
		UserEmail: email,
		Title:     "task " + id,
		Priority:  domain.PriorityMedium,
		Stage:     stage,
		DueDate:   due,
		CreatedAt: due.Add(-time.Hour),
	}
}

func TestOverviewForbiddenForNonAdmin(t *testing.T) {
	uc := New(&stubTaskRepo{}, nil)

	_, err := uc.Overview(context.Background(), domain.Identity{ID: "u1"}, taskview.Filter{}, time.Now())
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestOverviewGroupsAllUsers(t *testing.T) {
	now := time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)
	repo := &stubTaskRepo{tasks: []domain.Task{
		adminTask("1", "bob@example.com", domain.StageTodo, now),
		adminTask("2", "alice@example.com", domain.StageTodo, now),
		adminTask("3", "alice@example.com", domain.StageDone, now),
	}}
	uc := New(repo, nil)
	root := domain.Identity{ID: "root", Email: "root@example.com", Admin: true}

	groups, err := uc.Overview(context.Background(), root, taskview.Filter{}, now)
	require.NoError(t, err)
	require.True(t, repo.lastFilter.AllUsers, "admin read must lift the owner restriction")
	require.Len(t, groups, 2)
	require.Equal(t, "alice", groups[0].DisplayName)
	require.Len(t, groups[0].Tasks, 2)
	require.Equal(t, "bob", groups[1].DisplayName)
}

func TestOverviewUnboundedAcrossLargeStore(t *testing.T) {
	now := time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)
	const total = 750

	tasks := make([]domain.Task, 0, total)
	owners := []string{"alice@example.com", "bob@example.com", "carol@example.com"}
	for i := 0; i < total; i++ {
		task := adminTask(fmt.Sprintf("t-%d", i), owners[i%len(owners)], domain.StageTodo, now.AddDate(0, 0, i))
		tasks = append(tasks, task)
	}
	repo := &stubTaskRepo{tasks: tasks}
	uc := New(repo, nil)
	root := domain.Identity{ID: "root", Admin: true}

	groups, err := uc.Overview(context.Background(), root, taskview.Filter{}, now)
	require.NoError(t, err)

	// the union of the groups recovers every stored task
	seen := 0
	for _, g := range groups {
		seen += len(g.Tasks)
	}
	require.Equal(t, total, seen)
}

func TestOverviewAppliesFilter(t *testing.T) {
	now := time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)
	repo := &stubTaskRepo{tasks: []domain.Task{
		adminTask("1", "alice@example.com", domain.StageTodo, now),
		adminTask("2", "alice@example.com", domain.StageDone, now),
	}}
	uc := New(repo, nil)
	root := domain.Identity{ID: "root", Admin: true}

	groups, err := uc.Overview(context.Background(), root, taskview.Completed(true), now)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Tasks, 1)
	require.Equal(t, "2", groups[0].Tasks[0].ID)
}
