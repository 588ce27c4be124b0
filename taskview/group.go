package taskview

import (
	"sort"

	"github.com/tasktango/backend/domain"
)

const maxRawKeyDisplay = 12

// Group is one owner's slice of the admin view.
type Group struct {
	Key         string        `json:"key"`
	DisplayName string        `json:"display_name"`
	Tasks       []domain.Task `json:"tasks"`
}

// GroupByOwner partitions tasks by owner, keyed by the denormalized email
// when present and the owning user id otherwise. Tasks with no
// identifiable owner and malformed records are excluded. Each remaining
// task lands in exactly one group; groups come back sorted by display
// name, case-sensitive.
func GroupByOwner(tasks []domain.Task) []Group {
	byKey := make(map[string][]domain.Task)
	for _, t := range tasks {
		if !t.WellFormed() {
			continue
		}
		key := t.OwnerKey()
		if key == "" {
			continue
		}
		byKey[key] = append(byKey[key], t)
	}

	groups := make([]Group, 0, len(byKey))
	for key, members := range byKey {
		groups = append(groups, Group{
			Key:         key,
			DisplayName: DisplayName(key),
			Tasks:       members,
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].DisplayName < groups[j].DisplayName
	})
	return groups
}

// DisplayName derives the name shown for an owner identifier: the part
// before '@' for emails, otherwise the raw identifier truncated for
// display.
func DisplayName(identifier string) string {
	for i, r := range identifier {
		if r == '@' {
			return identifier[:i]
		}
	}
	runes := []rune(identifier)
	if len(runes) > maxRawKeyDisplay {
		return string(runes[:maxRawKeyDisplay]) + "..."
	}
	return identifier
}
