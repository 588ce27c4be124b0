package domain

import "time"

// StageEntry is one append-only record of a stage transition. Entries are
// written exactly once, as part of the transition itself, and never
// mutated or deleted afterwards.
type StageEntry struct {
	ID            string    `json:"id"`
	TaskID        string    `json:"task_id"`
	TaskName      string    `json:"task_name"`
	PreviousStage Stage     `json:"previous_stage"`
	NewStage      Stage     `json:"new_stage"`
	UserID        string    `json:"user_id"`
	UserEmail     string    `json:"user_email,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}
