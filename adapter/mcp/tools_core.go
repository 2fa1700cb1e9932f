package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/tasklist/adapter/cli"
)

func registerCoreTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("cli.health").
		Description("Check that the task store is loaded").
		Handler(func(ctx context.Context, input struct{}) (map[string]any, error) {
			if app == nil || app.ListDaysHandler == nil {
				return nil, errors.New("app not initialized")
			}
			days, err := app.ListDaysHandler.Handle(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{"status": "ok", "days": len(days)}, nil
		})

	srv.Tool("cli.version").
		Description("Get CLI version information").
		Handler(func(ctx context.Context, input struct{}) (map[string]string, error) {
			return map[string]string{
				"version":   cli.Version,
				"commit":    cli.Commit,
				"buildDate": cli.BuildDate,
			}, nil
		})

	return nil
}
