package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/google/uuid"

	"github.com/felixgeelhaar/tasklist/adapter/cli"
	"github.com/felixgeelhaar/tasklist/internal/tasks/application/commands"
	"github.com/felixgeelhaar/tasklist/internal/tasks/application/queries"
)

type taskAddInput struct {
	Title       string `json:"title" jsonschema:"required"`
	Due         string `json:"due" jsonschema:"required"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Status      string `json:"status,omitempty"`
	Notify      bool   `json:"notify,omitempty"`
}

type taskUpdateInput struct {
	TaskID      string  `json:"task_id" jsonschema:"required"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Due         *string `json:"due,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
	Notify      *bool   `json:"notify,omitempty"`
}

type taskListInput struct {
	Day      string `json:"day,omitempty"`
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
	HideDone bool   `json:"hide_done,omitempty"`
}

type taskDayInput struct {
	Day string `json:"day,omitempty"`
}

type taskIDInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
}

// taskResult reports a stored task. Saved is false when the change was
// applied in memory but the write to the slot failed.
type taskResult struct {
	Task      queries.TaskDTO `json:"task"`
	Saved     bool            `json:"saved"`
	SaveError string          `json:"save_error,omitempty"`
}

// deleteResult reports a removed task. Saved is false when the task is gone
// from memory but the write to the slot failed.
type deleteResult struct {
	TaskID    uuid.UUID `json:"task_id"`
	Deleted   bool      `json:"deleted"`
	Saved     bool      `json:"saved"`
	SaveError string    `json:"save_error,omitempty"`
}

type taskTools struct {
	app *cli.App
}

func registerTaskTools(srv *mcp.Server, deps ToolDependencies) error {
	tools := taskTools{app: deps.App}

	srv.Tool("task.add").
		Description("Add a task due at a date (YYYY-MM-DD, YYYY-MM-DDTHH:MM, RFC 3339, today, tomorrow)").
		Handler(tools.add)

	srv.Tool("task.update").
		Description("Update a task; changing the due date moves it to its new day").
		Handler(tools.update)

	srv.Tool("task.complete").
		Description("Mark a task as complete").
		Handler(tools.complete)

	srv.Tool("task.delete").
		Description("Delete a task").
		Handler(tools.delete)

	srv.Tool("task.show").
		Description("Get one task by id").
		Handler(tools.show)

	srv.Tool("task.list").
		Description("List tasks grouped by day, with optional filters").
		Handler(tools.list)

	srv.Tool("task.day").
		Description("List the tasks of one day, ordered by due time (defaults to today)").
		Handler(tools.day)

	srv.Tool("task.days").
		Description("List the days that have tasks, with completion counts").
		Handler(tools.days)

	return nil
}

func (t taskTools) add(ctx context.Context, input taskAddInput) (*taskResult, error) {
	if t.app == nil || t.app.AddTaskHandler == nil {
		return nil, cli.ErrNotInitialized
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.New("title is required")
	}
	due, err := t.app.ParseDue(input.Due)
	if err != nil {
		return nil, err
	}

	result, err := t.app.AddTaskHandler.Handle(ctx, commands.AddTaskCommand{
		Title:               input.Title,
		Description:         input.Description,
		DueDate:             due,
		Status:              input.Status,
		Priority:            input.Priority,
		NotificationEnabled: input.Notify,
	})
	if result == nil {
		return nil, err
	}
	return t.result(ctx, result.Task.ID, err)
}

func (t taskTools) update(ctx context.Context, input taskUpdateInput) (*taskResult, error) {
	if t.app == nil || t.app.UpdateTaskHandler == nil {
		return nil, cli.ErrNotInitialized
	}
	id, err := parseUUID(input.TaskID)
	if err != nil {
		return nil, err
	}

	cmd := commands.UpdateTaskCommand{
		TaskID:              id,
		Title:               input.Title,
		Description:         input.Description,
		Priority:            input.Priority,
		Status:              input.Status,
		NotificationEnabled: input.Notify,
	}
	if input.Due != nil {
		due, err := t.app.ParseDue(*input.Due)
		if err != nil {
			return nil, err
		}
		cmd.DueDate = &due
	}

	return t.runUpdate(ctx, cmd)
}

func (t taskTools) complete(ctx context.Context, input taskIDInput) (*taskResult, error) {
	if t.app == nil || t.app.UpdateTaskHandler == nil {
		return nil, cli.ErrNotInitialized
	}
	id, err := parseUUID(input.TaskID)
	if err != nil {
		return nil, err
	}
	status := "completed"
	return t.runUpdate(ctx, commands.UpdateTaskCommand{TaskID: id, Status: &status})
}

func (t taskTools) runUpdate(ctx context.Context, cmd commands.UpdateTaskCommand) (*taskResult, error) {
	result, err := t.app.UpdateTaskHandler.Handle(ctx, cmd)
	if result == nil {
		return nil, err
	}
	return t.result(ctx, result.Task.ID, err)
}

func (t taskTools) delete(ctx context.Context, input taskIDInput) (*deleteResult, error) {
	if t.app == nil || t.app.DeleteTaskHandler == nil {
		return nil, cli.ErrNotInitialized
	}
	id, err := parseUUID(input.TaskID)
	if err != nil {
		return nil, err
	}
	deleted, err := t.app.DeleteTaskHandler.Handle(ctx, commands.DeleteTaskCommand{TaskID: id})
	if deleted == nil {
		return nil, err
	}
	res := &deleteResult{TaskID: deleted.ID, Deleted: true, Saved: err == nil}
	if err != nil {
		res.SaveError = err.Error()
	}
	return res, nil
}

func (t taskTools) show(ctx context.Context, input taskIDInput) (*queries.TaskDTO, error) {
	if t.app == nil || t.app.GetTaskHandler == nil {
		return nil, cli.ErrNotInitialized
	}
	id, err := parseUUID(input.TaskID)
	if err != nil {
		return nil, err
	}
	return t.app.GetTaskHandler.Handle(ctx, id)
}

func (t taskTools) list(ctx context.Context, input taskListInput) ([]queries.DayDTO, error) {
	if t.app == nil || t.app.ListTasksHandler == nil {
		return nil, cli.ErrNotInitialized
	}
	query := queries.ListTasksQuery{
		Status:   input.Status,
		Priority: input.Priority,
		HideDone: input.HideDone,
	}
	if input.Day != "" {
		day, err := t.app.ParseDay(input.Day)
		if err != nil {
			return nil, err
		}
		query.Day = day.String()
	}
	return t.app.ListTasksHandler.Handle(ctx, query)
}

func (t taskTools) day(ctx context.Context, input taskDayInput) (*queries.DayDTO, error) {
	if t.app == nil || t.app.ListTasksHandler == nil {
		return nil, cli.ErrNotInitialized
	}
	day, err := t.app.ParseDay(input.Day)
	if err != nil {
		return nil, err
	}
	days, err := t.app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{Day: day.String()})
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return &queries.DayDTO{Day: day.String(), Tasks: []queries.TaskDTO{}}, nil
	}
	return &days[0], nil
}

func (t taskTools) days(ctx context.Context, input struct{}) ([]queries.DaySummary, error) {
	if t.app == nil || t.app.ListDaysHandler == nil {
		return nil, cli.ErrNotInitialized
	}
	return t.app.ListDaysHandler.Handle(ctx)
}

// result reloads the task so the reported day reflects the store. A save
// error is reported in the result rather than failing the call.
func (t taskTools) result(ctx context.Context, id uuid.UUID, saveErr error) (*taskResult, error) {
	dto, err := t.app.GetTaskHandler.Handle(ctx, id)
	if err != nil {
		return nil, err
	}
	res := &taskResult{Task: *dto, Saved: saveErr == nil}
	if saveErr != nil {
		res.SaveError = saveErr.Error()
	}
	return res, nil
}
