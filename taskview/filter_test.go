package taskview

import (
	"testing"
	"time"

	"github.com/tasktango/backend/domain"
)

var testNow = time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)

func newTask(id string, stage domain.Stage, priority domain.Priority, due time.Time) domain.Task {
	return domain.Task{
		ID:        id,
		UserID:    "u1",
		Title:     "task " + id,
		Priority:  priority,
		Stage:     stage,
		DueDate:   due,
		CreatedAt: testNow.Add(-24 * time.Hour),
		UpdatedAt: testNow.Add(-24 * time.Hour),
	}
}

func ids(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyEmptyInput(t *testing.T) {
	got := Apply(nil, Filter{}, testNow)
	if got == nil {
		t.Fatalf("Apply(nil) = nil, want empty slice")
	}
	if len(got) != 0 {
		t.Fatalf("Apply(nil) returned %d tasks", len(got))
	}
}

func TestApplyDropsMalformed(t *testing.T) {
	tasks := []domain.Task{
		newTask("ok", domain.StageTodo, domain.PriorityLow, testNow),
		{ID: "no-due", UserID: "u1", Stage: domain.StageTodo, CreatedAt: testNow},
		{ID: "no-created", UserID: "u1", Stage: domain.StageTodo, DueDate: testNow},
	}

	got := Apply(tasks, Filter{}, testNow)
	if !equalIDs(ids(got), []string{"ok"}) {
		t.Fatalf("got %v, want [ok]", ids(got))
	}
}

func TestApplySortsByDueDate(t *testing.T) {
	tasks := []domain.Task{
		newTask("c", domain.StageTodo, domain.PriorityLow, testNow.Add(48*time.Hour)),
		newTask("a", domain.StageTodo, domain.PriorityLow, testNow.Add(-48*time.Hour)),
		newTask("b", domain.StageTodo, domain.PriorityLow, testNow),
	}

	got := Apply(tasks, Filter{}, testNow)
	if !equalIDs(ids(got), []string{"a", "b", "c"}) {
		t.Fatalf("got %v, want [a b c]", ids(got))
	}
}

func TestApplyPriorityTieBreakOnIncompleteView(t *testing.T) {
	due := testNow.Add(24 * time.Hour)
	tasks := []domain.Task{
		newTask("low", domain.StageTodo, domain.PriorityLow, due),
		newTask("high", domain.StageTodo, domain.PriorityHigh, due),
		newTask("medium", domain.StageTodo, domain.PriorityMedium, due),
	}

	got := Apply(tasks, Completed(false), testNow)
	if !equalIDs(ids(got), []string{"high", "medium", "low"}) {
		t.Fatalf("got %v, want [high medium low]", ids(got))
	}
}

func TestApplyNoTieBreakOnMixedView(t *testing.T) {
	due := testNow.Add(24 * time.Hour)
	tasks := []domain.Task{
		newTask("low", domain.StageTodo, domain.PriorityLow, due),
		newTask("high", domain.StageDone, domain.PriorityHigh, due),
	}

	// No completion restriction: equal due dates keep their incoming order.
	got := Apply(tasks, Filter{}, testNow)
	if !equalIDs(ids(got), []string{"low", "high"}) {
		t.Fatalf("got %v, want [low high]", ids(got))
	}
}

func TestApplyCompletedFilter(t *testing.T) {
	tasks := []domain.Task{
		newTask("todo", domain.StageTodo, domain.PriorityLow, testNow),
		newTask("doing", domain.StageInProgress, domain.PriorityLow, testNow),
		newTask("done", domain.StageDone, domain.PriorityLow, testNow),
	}

	got := Apply(tasks, Completed(true), testNow)
	if !equalIDs(ids(got), []string{"done"}) {
		t.Fatalf("completed view got %v, want [done]", ids(got))
	}

	got = Apply(tasks, Completed(false), testNow)
	if !equalIDs(ids(got), []string{"todo", "doing"}) {
		t.Fatalf("incomplete view got %v, want [todo doing]", ids(got))
	}
}

func TestApplyStageAndPriorityFilters(t *testing.T) {
	tasks := []domain.Task{
		newTask("a", domain.StageTodo, domain.PriorityHigh, testNow),
		newTask("b", domain.StageInProgress, domain.PriorityHigh, testNow),
		newTask("c", domain.StageInProgress, domain.PriorityLow, testNow),
	}

	got := Apply(tasks, Filter{Stage: domain.StageInProgress}, testNow)
	if !equalIDs(ids(got), []string{"b", "c"}) {
		t.Fatalf("stage filter got %v, want [b c]", ids(got))
	}

	got = Apply(tasks, Filter{Priority: "high"}, testNow)
	if !equalIDs(ids(got), []string{"a", "b"}) {
		t.Fatalf("priority filter got %v, want [a b]", ids(got))
	}

	got = Apply(tasks, Filter{Priority: "all"}, testNow)
	if len(got) != 3 {
		t.Fatalf("priority all got %d tasks, want 3", len(got))
	}
}

func TestApplyWindowFilter(t *testing.T) {
	tasks := []domain.Task{
		newTask("today", domain.StageTodo, domain.PriorityLow, testNow),
		newTask("tomorrow", domain.StageTodo, domain.PriorityLow, testNow.Add(24*time.Hour)),
		newTask("last-month", domain.StageTodo, domain.PriorityLow, testNow.AddDate(0, -1, 0)),
	}

	got := Apply(tasks, Filter{Window: WindowToday}, testNow)
	if !equalIDs(ids(got), []string{"today"}) {
		t.Fatalf("today window got %v, want [today]", ids(got))
	}

	got = Apply(tasks, Filter{Window: WindowMonth}, testNow)
	if !equalIDs(ids(got), []string{"today", "tomorrow"}) {
		t.Fatalf("month window got %v, want [today tomorrow]", ids(got))
	}
}

func TestApplyIdempotent(t *testing.T) {
	due := testNow.Add(24 * time.Hour)
	tasks := []domain.Task{
		newTask("low", domain.StageTodo, domain.PriorityLow, due),
		newTask("high", domain.StageTodo, domain.PriorityHigh, due),
		newTask("early", domain.StageTodo, domain.PriorityMedium, testNow),
	}

	once := Apply(tasks, Completed(false), testNow)
	twice := Apply(once, Completed(false), testNow)
	if !equalIDs(ids(once), ids(twice)) {
		t.Fatalf("second pass reordered: %v vs %v", ids(once), ids(twice))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	tasks := []domain.Task{
		newTask("b", domain.StageTodo, domain.PriorityLow, testNow.Add(time.Hour)),
		newTask("a", domain.StageTodo, domain.PriorityLow, testNow),
	}

	_ = Apply(tasks, Filter{}, testNow)
	if !equalIDs(ids(tasks), []string{"b", "a"}) {
		t.Fatalf("input order changed: %v", ids(tasks))
	}
}
