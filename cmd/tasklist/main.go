package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/tasklist/adapter/cli"
	"github.com/felixgeelhaar/tasklist/adapter/cli/mcp"
	"github.com/felixgeelhaar/tasklist/adapter/cli/reminders"
	"github.com/felixgeelhaar/tasklist/adapter/cli/task"
	"github.com/felixgeelhaar/tasklist/internal/app"
	"github.com/felixgeelhaar/tasklist/pkg/config"
	"github.com/felixgeelhaar/tasklist/pkg/observability"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := observability.LoggerFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}

	logger = newLogger(cfg)
	cli.SetLogger(logger)

	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if !cfg.IsDevelopment() {
			logger.Error("failed to initialize container", "error", err)
			return 1
		}
		// version and help still work without a store
		logger.Warn("failed to initialize container, running in limited mode", "error", err)
	} else {
		defer func() {
			if err := container.Close(); err != nil {
				logger.Error("failed to close container", "error", err)
			}
		}()

		cliApp = cli.NewApp(
			container.AddTaskHandler,
			container.UpdateTaskHandler,
			container.DeleteTaskHandler,
			container.ListTasksHandler,
			container.GetTaskHandler,
			container.ListDaysHandler,
		)
		cliApp.SetLocation(container.Manager.Location())
	}

	cli.SetApp(cliApp)

	cli.AddCommand(task.Cmd)
	cli.AddCommand(reminders.Cmd)
	cli.AddCommand(mcp.Cmd)

	return cli.Execute(ctx)
}

func newLogger(cfg *config.Config) *slog.Logger {
	logCfg := observability.DefaultLogConfig()
	if cfg.IsProduction() {
		logCfg = observability.ProductionLogConfig()
	}
	logCfg.Level = observability.LogLevel(cfg.LogLevel)
	logCfg.Format = observability.LogFormat(cfg.LogFormat)
	logCfg.ServiceVersion = cli.Version
	return observability.NewLogger(logCfg)
}
