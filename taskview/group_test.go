package taskview

import (
	"testing"
	"time"

	"github.com/tasktango/backend/domain"
)

func ownedTask(id, userID, email string) domain.Task {
	return domain.Task{
		ID:        id,
		UserID:    userID,
		UserEmail: email,
		Title:     "task " + id,
		Priority:  domain.PriorityMedium,
		Stage:     domain.StageTodo,
		DueDate:   testNow,
		CreatedAt: testNow,
	}
}

func TestGroupByOwnerPartition(t *testing.T) {
	tasks := []domain.Task{
		ownedTask("1", "u1", "alice@example.com"),
		ownedTask("2", "u2", "bob@example.com"),
		ownedTask("3", "u1", "alice@example.com"),
	}

	groups := GroupByOwner(tasks)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	// Every task lands in exactly one group.
	total := 0
	seen := map[string]bool{}
	for _, g := range groups {
		for _, task := range g.Tasks {
			if seen[task.ID] {
				t.Fatalf("task %s appears in more than one group", task.ID)
			}
			seen[task.ID] = true
			if task.OwnerKey() != g.Key {
				t.Fatalf("task %s in group %q, want %q", task.ID, g.Key, task.OwnerKey())
			}
			total++
		}
	}
	if total != len(tasks) {
		t.Fatalf("groups hold %d tasks, want %d", total, len(tasks))
	}
}

func TestGroupByOwnerSortedByDisplayName(t *testing.T) {
	tasks := []domain.Task{
		ownedTask("1", "u3", "carol@example.com"),
		ownedTask("2", "u1", "alice@example.com"),
		ownedTask("3", "u2", "bob@example.com"),
	}

	groups := GroupByOwner(tasks)
	want := []string{"alice", "bob", "carol"}
	for i, g := range groups {
		if g.DisplayName != want[i] {
			t.Fatalf("group %d display name %q, want %q", i, g.DisplayName, want[i])
		}
	}
}

func TestGroupByOwnerFallsBackToUserID(t *testing.T) {
	tasks := []domain.Task{
		ownedTask("1", "user-without-email", ""),
	}

	groups := GroupByOwner(tasks)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].Key != "user-without-email" {
		t.Fatalf("group key %q, want user id", groups[0].Key)
	}
}

func TestGroupByOwnerDropsOwnerlessAndMalformed(t *testing.T) {
	tasks := []domain.Task{
		ownedTask("kept", "u1", "alice@example.com"),
		ownedTask("ownerless", "", ""),
		{ID: "malformed", UserID: "u1", UserEmail: "alice@example.com", Stage: domain.StageTodo},
	}

	groups := GroupByOwner(tasks)
	if len(groups) != 1 || len(groups[0].Tasks) != 1 || groups[0].Tasks[0].ID != "kept" {
		t.Fatalf("unexpected groups: %+v", groups)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "email uses local part", input: "alice@example.com", want: "alice"},
		{name: "first at sign wins", input: "a@b@c", want: "a"},
		{name: "short raw id unchanged", input: "u1", want: "u1"},
		{name: "long raw id truncated", input: "0123456789abcdef", want: "0123456789ab..."},
		{name: "exactly at limit unchanged", input: "0123456789ab", want: "0123456789ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayName(tt.input); got != tt.want {
				t.Fatalf("DisplayName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBoardColumns(t *testing.T) {
	base := testNow.Add(-time.Hour)
	mk := func(id string, stage domain.Stage, created time.Time) domain.Task {
		task := newTask(id, stage, domain.PriorityMedium, testNow)
		task.CreatedAt = created
		return task
	}

	tasks := []domain.Task{
		mk("second-todo", domain.StageTodo, base.Add(2*time.Minute)),
		mk("doing", domain.StageInProgress, base),
		mk("first-todo", domain.StageTodo, base.Add(time.Minute)),
		mk("done", domain.StageDone, base),
		mk("stray", "archived", base), // unknown stage lands in todo
	}

	columns := Board(tasks)
	if len(columns) != 3 {
		t.Fatalf("got %d columns, want 3", len(columns))
	}

	if columns[0].Stage != domain.StageTodo || columns[1].Stage != domain.StageInProgress || columns[2].Stage != domain.StageDone {
		t.Fatalf("columns out of order: %v %v %v", columns[0].Stage, columns[1].Stage, columns[2].Stage)
	}

	if !equalIDs(ids(columns[0].Tasks), []string{"stray", "first-todo", "second-todo"}) {
		t.Fatalf("todo column %v, want created-at order with stray first", ids(columns[0].Tasks))
	}
	if !equalIDs(ids(columns[1].Tasks), []string{"doing"}) {
		t.Fatalf("in progress column %v", ids(columns[1].Tasks))
	}
	if !equalIDs(ids(columns[2].Tasks), []string{"done"}) {
		t.Fatalf("done column %v", ids(columns[2].Tasks))
	}
}

func TestBoardEmptyColumnsPresent(t *testing.T) {
	columns := Board(nil)
	if len(columns) != 3 {
		t.Fatalf("got %d columns, want 3", len(columns))
	}
	for _, c := range columns {
		if len(c.Tasks) != 0 {
			t.Fatalf("column %s not empty", c.Stage)
		}
	}
}
