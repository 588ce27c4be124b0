package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tasktango/backend/domain"
	"github.com/tasktango/backend/repository"
	"github.com/tasktango/backend/taskview"
)

// Input carries the caller-editable fields of a task.
type Input struct {
	Title               string
	Description         string
	Priority            domain.Priority
	DueDate             time.Time
	CustomerInteraction bool
	CustomerName        string
}

func (in Input) validate() error {
	if in.Title == "" {
		return domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	if in.DueDate.IsZero() {
		return domain.NewError(domain.ErrCodeInvalid, "due date is required")
	}
	if _, err := domain.ParsePriority(string(in.Priority)); err != nil {
		return err
	}
	if in.CustomerInteraction && in.CustomerName == "" {
		return domain.NewError(domain.ErrCodeInvalid, "customer name is required for customer interactions")
	}
	return nil
}

const maxActivityEntries = 50

type UseCase struct {
	tasks   repository.TaskRepository
	history repository.StageHistoryRepository
	logger  *zap.Logger
}

func New(tasks repository.TaskRepository, history repository.StageHistoryRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:   tasks,
		history: history,
		logger:  logger,
	}
}

// ListTasks returns the actor's tasks narrowed and ordered by the view
// filter. now anchors the date windows.
func (uc *UseCase) ListTasks(ctx context.Context, actor domain.Identity, filter taskview.Filter, now time.Time) ([]domain.Task, error) {
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{UserID: actor.ID})
	if err != nil {
		return nil, err
	}
	return taskview.Apply(tasks, filter, now), nil
}

// Board returns the actor's tasks split into Kanban columns.
func (uc *UseCase) Board(ctx context.Context, actor domain.Identity) ([]taskview.Column, error) {
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{UserID: actor.ID})
	if err != nil {
		return nil, err
	}
	return taskview.Board(tasks), nil
}

func (uc *UseCase) GetTask(ctx context.Context, actor domain.Identity, id string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !task.OwnedBy(actor) {
		return nil, domain.ErrForbidden
	}
	return task, nil
}

// CreateTask validates the input and stores a new task in the todo column.
// Validation failures never reach the store.
func (uc *UseCase) CreateTask(ctx context.Context, actor domain.Identity, in Input) (*domain.Task, error) {
	if actor.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	task := &domain.Task{
		UserID:              actor.ID,
		UserEmail:           actor.Email,
		Title:               in.Title,
		Description:         in.Description,
		Priority:            in.Priority,
		Stage:               domain.StageTodo,
		DueDate:             in.DueDate,
		CustomerInteraction: in.CustomerInteraction,
		CustomerName:        in.CustomerName,
	}
	if !task.CustomerInteraction {
		task.CustomerName = ""
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("task created", zap.String("task_id", created.ID), zap.String("user_id", actor.ID))
	return created, nil
}

// UpdateTask applies the editable fields to an existing task. Ownership,
// stage and the immutable fields are untouched.
func (uc *UseCase) UpdateTask(ctx context.Context, actor domain.Identity, id string, in Input) (*domain.Task, error) {
	task, err := uc.GetTask(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	task.Title = in.Title
	task.Description = in.Description
	task.Priority = in.Priority
	task.DueDate = in.DueDate
	task.CustomerInteraction = in.CustomerInteraction
	task.CustomerName = in.CustomerName
	if !task.CustomerInteraction {
		task.CustomerName = ""
	}

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, actor domain.Identity, id string) error {
	if _, err := uc.GetTask(ctx, actor, id); err != nil {
		return err
	}
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("task deleted", zap.String("task_id", id), zap.String("user_id", actor.ID))
	return nil
}

// MoveStage transitions the task to another board column and appends the
// matching history entry in one atomic commit. Transitions are unordered:
// any column may move to any other, including reopening a done task. A
// move to the current column is a no-op.
func (uc *UseCase) MoveStage(ctx context.Context, actor domain.Identity, id string, to domain.Stage) (*domain.Task, error) {
	if _, err := domain.ParseStage(string(to)); err != nil {
		return nil, err
	}
	task, err := uc.GetTask(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if task.Stage == to {
		return task, nil
	}

	entry := &domain.StageEntry{
		TaskID:        task.ID,
		TaskName:      task.Title,
		PreviousStage: task.Stage,
		NewStage:      to,
		UserID:        actor.ID,
		UserEmail:     actor.Email,
	}
	if err := uc.tasks.UpdateStage(ctx, entry); err != nil {
		return nil, err
	}

	task.Stage = to
	task.UpdatedAt = entry.UpdatedAt
	uc.logger.Info("task stage moved",
		zap.String("task_id", task.ID),
		zap.String("from", string(entry.PreviousStage)),
		zap.String("to", string(to)))
	return task, nil
}

// ToggleCompletion flips the task between done and todo, recording the
// transition like any other stage move.
func (uc *UseCase) ToggleCompletion(ctx context.Context, actor domain.Identity, id string) (*domain.Task, error) {
	task, err := uc.GetTask(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	target := domain.StageDone
	if task.IsCompleted() {
		target = domain.StageTodo
	}
	return uc.MoveStage(ctx, actor, id, target)
}

// History returns the append-only transition log for one task.
func (uc *UseCase) History(ctx context.Context, actor domain.Identity, taskID string) ([]domain.StageEntry, error) {
	if _, err := uc.GetTask(ctx, actor, taskID); err != nil {
		return nil, err
	}
	return uc.history.ListByTask(ctx, taskID)
}

// Activity returns the actor's most recent stage transitions across all
// their tasks, newest first.
func (uc *UseCase) Activity(ctx context.Context, actor domain.Identity, limit int) ([]domain.StageEntry, error) {
	if actor.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	if limit <= 0 || limit > maxActivityEntries {
		limit = maxActivityEntries
	}
	return uc.history.ListByUser(ctx, actor.ID, limit)
}
