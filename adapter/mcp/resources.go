package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/tasklist/adapter/cli"
	"github.com/felixgeelhaar/tasklist/internal/tasks/application/queries"
)

// RegisterResources registers MCP resources that expose the task list.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	app := deps.App

	srv.Resource("tasklist://tasks").
		Name("Tasks").
		Description("Every task, grouped by due day").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			return listResource(ctx, app, uri, queries.ListTasksQuery{})
		})

	srv.Resource("tasklist://tasks/open").
		Name("Open Tasks").
		Description("Tasks that are not completed, grouped by due day").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			return listResource(ctx, app, uri, queries.ListTasksQuery{HideDone: true})
		})

	srv.Resource("tasklist://tasks/today").
		Name("Today's Tasks").
		Description("Tasks due today in the configured time zone").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app == nil {
				return nil, cli.ErrNotInitialized
			}
			day, err := app.ParseDay("today")
			if err != nil {
				return nil, err
			}
			return listResource(ctx, app, uri, queries.ListTasksQuery{Day: day.String()})
		})

	srv.Resource("tasklist://days").
		Name("Days").
		Description("Days that have tasks, with completion counts").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app == nil || app.ListDaysHandler == nil {
				return nil, cli.ErrNotInitialized
			}
			days, err := app.ListDaysHandler.Handle(ctx)
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, days)
		})

	return nil
}

func listResource(ctx context.Context, app *cli.App, uri string, query queries.ListTasksQuery) (*mcp.ResourceContent, error) {
	if app == nil || app.ListTasksHandler == nil {
		return nil, cli.ErrNotInitialized
	}
	days, err := app.ListTasksHandler.Handle(ctx, query)
	if err != nil {
		return nil, err
	}
	return jsonResource(uri, days)
}

func jsonResource(uri string, v any) (*mcp.ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}, nil
}
