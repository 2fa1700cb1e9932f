package task

import (
	"sort"
	"time"
)

// State maps each day key to the tasks due that day. It is the unit the
// persistence layer reads and writes.
type State map[Day][]Task

// DayGroup is one day of the grouped view.
type DayGroup struct {
	Day   Day
	Tasks []Task
}

// Clone returns a deep copy with no shared slices.
func (s State) Clone() State {
	out := make(State, len(s))
	for day, tasks := range s {
		if len(tasks) == 0 {
			continue
		}
		out[day] = append([]Task(nil), tasks...)
	}
	return out
}

// Days returns the non-empty day keys in ascending order.
func (s State) Days() []Day {
	days := make([]Day, 0, len(s))
	for day, tasks := range s {
		if len(tasks) > 0 {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// Len returns the number of tasks across all days.
func (s State) Len() int {
	n := 0
	for _, tasks := range s {
		n += len(tasks)
	}
	return n
}

// Grouped returns one group per non-empty day, ascending by day, each
// sorted ascending by due time. Ties keep insertion order.
func (s State) Grouped() []DayGroup {
	days := s.Days()
	groups := make([]DayGroup, 0, len(days))
	for _, day := range days {
		groups = append(groups, DayGroup{Day: day, Tasks: SortByDueDate(s[day])})
	}
	return groups
}

// Equal reports whether both states hold the same tasks under the same keys,
// ignoring order within a bucket.
func (s State) Equal(other State) bool {
	if len(s.Days()) != len(other.Days()) {
		return false
	}
	for day, tasks := range s {
		theirs := other[day]
		if len(tasks) != len(theirs) {
			return false
		}
		matched := make([]bool, len(theirs))
		for _, t := range tasks {
			found := false
			for i, o := range theirs {
				if !matched[i] && t.Equal(o) {
					matched[i] = true
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

// Misplaced returns the tasks whose bucket key differs from their
// normalized due date in loc.
func (s State) Misplaced(loc *time.Location) []Task {
	var out []Task
	for day, tasks := range s {
		for _, t := range tasks {
			if t.Day(loc) != day {
				out = append(out, t)
			}
		}
	}
	return out
}

// SortByDueDate returns a copy of tasks ordered by due date.
func SortByDueDate(tasks []Task) []Task {
	out := append([]Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}
