package postgres

// clampLimit bounds the history feed reads. Task listing is deliberately
// unpaged; see repository.TaskFilter.
func clampLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 500
	}
	return limit
}
