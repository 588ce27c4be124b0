package domain

import "time"

// Priority is the three-level task priority.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority validates a priority string.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	}
	return "", NewError(ErrCodeInvalid, "unknown priority")
}

// Rank orders priorities for sorting: high(1) < medium(2) < low(3).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// Stage is the board column a task lives in. Any stage may move to any
// other stage; there is no terminal stage.
type Stage string

const (
	StageTodo       Stage = "todo"
	StageInProgress Stage = "inProgress"
	StageDone       Stage = "done"
)

// ParseStage validates a stage string.
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case StageTodo, StageInProgress, StageDone:
		return Stage(s), nil
	}
	return "", NewError(ErrCodeInvalid, "unknown stage")
}

// Stages lists the board columns in display order.
func Stages() []Stage {
	return []Stage{StageTodo, StageInProgress, StageDone}
}

// Task represents one unit of work owned by a single user.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	UserEmail   string    `json:"user_email,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    Priority  `json:"priority"`
	Stage       Stage     `json:"stage"`
	DueDate     time.Time `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	CustomerInteraction bool   `json:"customer_interaction,omitempty"`
	CustomerName        string `json:"customer_name,omitempty"`
}

// IsCompleted reports whether the task sits in the done column. The stage
// enum is the only completion representation stored.
func (t *Task) IsCompleted() bool {
	return t != nil && t.Stage == StageDone
}

// WellFormed reports whether the task carries the timestamps every view
// requires. Records failing this check are skipped from views, not errored.
func (t *Task) WellFormed() bool {
	return t != nil && !t.DueDate.IsZero() && !t.CreatedAt.IsZero()
}

// OwnerKey returns the identifier admin views group by: the denormalized
// email when present, otherwise the owning user id.
func (t *Task) OwnerKey() string {
	if t == nil {
		return ""
	}
	if t.UserEmail != "" {
		return t.UserEmail
	}
	return t.UserID
}

// OwnedBy reports whether the actor may read or mutate this task.
func (t *Task) OwnedBy(actor Identity) bool {
	if t == nil {
		return false
	}
	return actor.Admin || (actor.ID != "" && actor.ID == t.UserID)
}
