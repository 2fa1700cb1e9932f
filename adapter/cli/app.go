package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/tasklist/internal/tasks/application/commands"
	"github.com/felixgeelhaar/tasklist/internal/tasks/application/queries"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
)

// ErrNotInitialized is returned by commands run without a task store.
var ErrNotInitialized = errors.New("application not initialized - task store unavailable")

// App holds the CLI application dependencies.
type App struct {
	// Command handlers
	AddTaskHandler    *commands.AddTaskHandler
	UpdateTaskHandler *commands.UpdateTaskHandler
	DeleteTaskHandler *commands.DeleteTaskHandler

	// Query handlers
	ListTasksHandler *queries.ListTasksHandler
	GetTaskHandler   *queries.GetTaskHandler
	ListDaysHandler  *queries.ListDaysHandler

	// Location is the zone used for day keys and for parsing due dates.
	Location *time.Location

	// Now is the clock used for relative days such as "today".
	Now func() time.Time
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	addTaskHandler *commands.AddTaskHandler,
	updateTaskHandler *commands.UpdateTaskHandler,
	deleteTaskHandler *commands.DeleteTaskHandler,
	listTasksHandler *queries.ListTasksHandler,
	getTaskHandler *queries.GetTaskHandler,
	listDaysHandler *queries.ListDaysHandler,
) *App {
	return &App{
		AddTaskHandler:    addTaskHandler,
		UpdateTaskHandler: updateTaskHandler,
		DeleteTaskHandler: deleteTaskHandler,
		ListTasksHandler:  listTasksHandler,
		GetTaskHandler:    getTaskHandler,
		ListDaysHandler:   listDaysHandler,
		Location:          time.Local,
		Now:               time.Now,
	}
}

// SetLocation sets the zone used for day keys.
func (a *App) SetLocation(loc *time.Location) {
	if loc != nil {
		a.Location = loc
	}
}

// Today returns the current time in the app's location.
func (a *App) Today() time.Time {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	loc := a.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

var dueLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	task.DayLayout,
}

// ParseDue reads a due date in the app's location. Date-only values and
// the words today, tomorrow and yesterday mean the start of that day.
func (a *App) ParseDue(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("due date is required")
	}

	if day, ok := a.relativeDay(value); ok {
		return day, nil
	}

	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, value, a.Today().Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid due date %q (use YYYY-MM-DD, YYYY-MM-DDTHH:MM, RFC 3339, today or tomorrow)", value)
}

// ParseDay resolves a day key or a relative day; empty means today.
func (a *App) ParseDay(value string) (task.Day, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = "today"
	}
	if t, ok := a.relativeDay(value); ok {
		return task.NormalizeDay(t, t.Location()), nil
	}
	return task.ParseDay(value)
}

func (a *App) relativeDay(value string) (time.Time, bool) {
	today := a.Today()
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	switch strings.ToLower(value) {
	case "today":
		return start, true
	case "tomorrow":
		return start.AddDate(0, 0, 1), true
	case "yesterday":
		return start.AddDate(0, 0, -1), true
	default:
		return time.Time{}, false
	}
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
