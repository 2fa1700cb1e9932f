package task_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTask(t *testing.T, title string, due time.Time) task.Task {
	t.Helper()
	tsk, err := task.NewTask(title, due)
	require.NoError(t, err)
	return tsk
}

func TestState_DaysAscending(t *testing.T) {
	s := task.State{
		"2024-11-22": {mustTask(t, "c", time.Date(2024, 11, 22, 9, 0, 0, 0, time.UTC))},
		"2024-11-20": {mustTask(t, "a", time.Date(2024, 11, 20, 9, 0, 0, 0, time.UTC))},
		"2024-11-21": {mustTask(t, "b", time.Date(2024, 11, 21, 9, 0, 0, 0, time.UTC))},
		"2024-11-23": {},
	}

	assert.Equal(t, []task.Day{"2024-11-20", "2024-11-21", "2024-11-22"}, s.Days())
	assert.Equal(t, 3, s.Len())
}

func TestState_Grouped(t *testing.T) {
	late := mustTask(t, "late", time.Date(2024, 11, 20, 18, 0, 0, 0, time.UTC))
	early := mustTask(t, "early", time.Date(2024, 11, 20, 9, 0, 0, 0, time.UTC))
	next := mustTask(t, "next", time.Date(2024, 11, 21, 7, 0, 0, 0, time.UTC))

	s := task.State{
		"2024-11-21": {next},
		"2024-11-20": {late, early},
	}

	groups := s.Grouped()
	require.Len(t, groups, 2)
	assert.Equal(t, task.Day("2024-11-20"), groups[0].Day)
	assert.Equal(t, []string{"early", "late"}, titles(groups[0].Tasks))
	assert.Equal(t, task.Day("2024-11-21"), groups[1].Day)
	assert.Equal(t, []string{"next"}, titles(groups[1].Tasks))

	// Grouping does not reorder the underlying bucket.
	assert.Equal(t, []string{"late", "early"}, titles(s["2024-11-20"]))
}

func TestState_CloneIsIndependent(t *testing.T) {
	a := mustTask(t, "a", time.Date(2024, 11, 20, 9, 0, 0, 0, time.UTC))
	s := task.State{"2024-11-20": {a}}

	c := s.Clone()
	c["2024-11-20"][0].Title = "changed"
	c["2024-11-21"] = []task.Task{a}

	assert.Equal(t, "a", s["2024-11-20"][0].Title)
	assert.NotContains(t, s, task.Day("2024-11-21"))
}

func TestState_Equal(t *testing.T) {
	a := mustTask(t, "a", time.Date(2024, 11, 20, 9, 0, 0, 0, time.UTC))
	b := mustTask(t, "b", time.Date(2024, 11, 20, 10, 0, 0, 0, time.UTC))

	assert.True(t, task.State{}.Equal(task.State{}))
	assert.True(t, task.State{"2024-11-20": {a, b}}.Equal(task.State{"2024-11-20": {b, a}}))
	assert.False(t, task.State{"2024-11-20": {a}}.Equal(task.State{"2024-11-20": {b}}))
	assert.False(t, task.State{"2024-11-20": {a}}.Equal(task.State{"2024-11-21": {a}}))
}

func TestState_EqualMatchesEachTaskOnce(t *testing.T) {
	a := mustTask(t, "a", time.Date(2024, 11, 20, 9, 0, 0, 0, time.UTC))
	b := mustTask(t, "b", time.Date(2024, 11, 20, 10, 0, 0, 0, time.UTC))

	dup := task.State{"2024-11-20": {a, a}}
	pair := task.State{"2024-11-20": {a, b}}
	assert.False(t, dup.Equal(pair))
	assert.False(t, pair.Equal(dup))
	assert.True(t, dup.Equal(task.State{"2024-11-20": {a, a}}))
}

func TestState_Misplaced(t *testing.T) {
	a := mustTask(t, "a", time.Date(2024, 11, 20, 9, 0, 0, 0, time.UTC))
	s := task.State{"2024-11-20": {a}}
	assert.Empty(t, s.Misplaced(time.UTC))

	s["2024-11-19"] = []task.Task{a}
	misplaced := s.Misplaced(time.UTC)
	require.Len(t, misplaced, 1)
	assert.Equal(t, a.ID, misplaced[0].ID)
}

func titles(tasks []task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}
