package taskview

import (
	"sort"

	"github.com/tasktango/backend/domain"
)

// Column is one Kanban lane.
type Column struct {
	Stage domain.Stage  `json:"stage"`
	Name  string        `json:"name"`
	Tasks []domain.Task `json:"tasks"`
}

var columnNames = map[domain.Stage]string{
	domain.StageTodo:       "To Do",
	domain.StageInProgress: "In Progress",
	domain.StageDone:       "Done",
}

// Board splits tasks into the three stage columns, each ordered by
// creation time ascending. Tasks with an unknown stage fall into the todo
// column; malformed records are dropped.
func Board(tasks []domain.Task) []Column {
	byStage := make(map[domain.Stage][]domain.Task, len(columnNames))
	for _, t := range tasks {
		if !t.WellFormed() {
			continue
		}
		stage := t.Stage
		if _, known := columnNames[stage]; !known {
			stage = domain.StageTodo
		}
		byStage[stage] = append(byStage[stage], t)
	}

	columns := make([]Column, 0, len(columnNames))
	for _, stage := range domain.Stages() {
		members := byStage[stage]
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].CreatedAt.Before(members[j].CreatedAt)
		})
		columns = append(columns, Column{
			Stage: stage,
			Name:  columnNames[stage],
			Tasks: members,
		})
	}
	return columns
}
