package taskview

import (
	"time"

	"github.com/tasktango/backend/domain"
)

// Window selects a calendar range relative to a reference instant.
type Window string

const (
	WindowAll       Window = "all"
	WindowToday     Window = "today"
	WindowYesterday Window = "yesterday"
	// WindowWeek is the current calendar week, starting Monday.
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// ParseWindow validates a window string, treating "" as WindowAll.
func ParseWindow(s string) (Window, error) {
	if s == "" {
		return WindowAll, nil
	}
	switch Window(s) {
	case WindowAll, WindowToday, WindowYesterday, WindowWeek, WindowMonth:
		return Window(s), nil
	}
	return "", domain.NewError(domain.ErrCodeInvalid, "unknown date window")
}

// Contains reports whether t falls inside the window anchored at now.
// Ranges are evaluated in now's location and are inclusive of their start
// instant and exclusive of the next range's start.
func (w Window) Contains(t, now time.Time) bool {
	start, end, bounded := w.bounds(now)
	if !bounded {
		return true
	}
	t = t.In(now.Location())
	return !t.Before(start) && t.Before(end)
}

func (w Window) bounds(now time.Time) (start, end time.Time, bounded bool) {
	loc := now.Location()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch w {
	case WindowToday:
		return day, day.AddDate(0, 0, 1), true
	case WindowYesterday:
		return day.AddDate(0, 0, -1), day, true
	case WindowWeek:
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		monday := day.AddDate(0, 0, -offset)
		return monday, monday.AddDate(0, 0, 7), true
	case WindowMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return first, first.AddDate(0, 1, 0), true
	}
	return time.Time{}, time.Time{}, false
}
