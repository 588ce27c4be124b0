// Package taskview holds the pure aggregation, filtering and grouping
// logic behind the task list, board and admin views. Every function is a
// pure function of its inputs: no store access, no clock access beyond the
// caller-supplied reference time, and inputs are never mutated.
package taskview

import (
	"sort"
	"time"

	"github.com/tasktango/backend/domain"
)

// Filter narrows a task list. Zero values mean "not applied".
type Filter struct {
	// Stage matches one board column exactly when set.
	Stage domain.Stage
	// Completed matches done (true) or not-done (false) when non-nil.
	Completed *bool
	// Priority is "", "all", or one exact priority.
	Priority string
	// Window restricts by due date; "" behaves like WindowAll.
	Window Window
}

// Completed returns a Filter for the completion flag views.
func Completed(done bool) Filter {
	return Filter{Completed: &done}
}

// excludesDone reports whether the filter can only yield incomplete tasks,
// which is what enables the priority tie-break on equal due dates.
func (f Filter) excludesDone() bool {
	if f.Completed != nil && !*f.Completed {
		return true
	}
	return f.Stage != "" && f.Stage != domain.StageDone
}

func (f Filter) match(t domain.Task, now time.Time) bool {
	if f.Stage != "" && t.Stage != f.Stage {
		return false
	}
	if f.Completed != nil && t.IsCompleted() != *f.Completed {
		return false
	}
	if f.Priority != "" && f.Priority != "all" && string(t.Priority) != f.Priority {
		return false
	}
	window := f.Window
	if window == "" {
		window = WindowAll
	}
	return window.Contains(t.DueDate, now)
}

// Apply returns the tasks passing every predicate in f, ordered by due
// date ascending. On incomplete views, equal due dates break ties by
// priority rank (high before medium before low); otherwise the incoming
// order is preserved among equals. Malformed records (missing due date or
// created-at) are dropped from every view. An empty input yields an empty
// result, never an error.
func Apply(tasks []domain.Task, f Filter, now time.Time) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.WellFormed() {
			continue
		}
		if f.match(t, now) {
			out = append(out, t)
		}
	}
	sortTasks(out, f.excludesDone())
	return out
}

// sortTasks orders by due date ascending, stable. With tie-break enabled,
// equal due dates order by priority rank.
func sortTasks(tasks []domain.Task, priorityTieBreak bool) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		if priorityTieBreak {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		return false
	})
}
