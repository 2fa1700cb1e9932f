package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/tasklist/adapter/cli"
	"github.com/felixgeelhaar/tasklist/internal/app"
	mcpinternal "github.com/felixgeelhaar/tasklist/internal/mcp"
	"github.com/felixgeelhaar/tasklist/pkg/config"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start an HTTP MCP server exposing the task tools, resources and prompts.

The listen address comes from MCP_ADDR. Set MCP_AUTH_TOKEN to require a
bearer token on every request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger := cli.Logger()

		container, err := app.NewContainer(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := container.Close(); err != nil {
				logger.Error("failed to close container", "error", err)
			}
		}()

		cliApp := mcpinternal.NewCLIApp(container)
		err = mcpinternal.Serve(ctx, cfg, cliApp, logger)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}
