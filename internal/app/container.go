// Package app wires configuration, persistence, reminders and the task
// handlers into a single container shared by the CLI and the MCP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/felixgeelhaar/tasklist/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/tasklist/internal/tasks/application"
	"github.com/felixgeelhaar/tasklist/internal/tasks/application/commands"
	"github.com/felixgeelhaar/tasklist/internal/tasks/application/queries"
	"github.com/felixgeelhaar/tasklist/internal/tasks/application/services"
	"github.com/felixgeelhaar/tasklist/internal/tasks/infrastructure/persistence"
	"github.com/felixgeelhaar/tasklist/internal/tasks/infrastructure/reminders"
	"github.com/felixgeelhaar/tasklist/pkg/config"
	"github.com/felixgeelhaar/tasklist/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics observability.Metrics

	// Persistence
	Slot persistence.Slot
	Repo *persistence.SlotRepository

	// Store
	Manager *services.Manager

	// Reminders
	Reminders      application.ReminderScheduler
	EventPublisher eventbus.Publisher

	// Command handlers
	AddTaskHandler    *commands.AddTaskHandler
	UpdateTaskHandler *commands.UpdateTaskHandler
	DeleteTaskHandler *commands.DeleteTaskHandler

	// Query handlers
	ListTasksHandler *queries.ListTasksHandler
	GetTaskHandler   *queries.GetTaskHandler
	ListDaysHandler  *queries.ListDaysHandler

	reminderOut io.Writer
	closers     []io.Closer
}

// Option configures a Container.
type Option func(*Container)

// WithMetrics replaces the default no-op metrics collector.
func WithMetrics(metrics observability.Metrics) Option {
	return func(c *Container) {
		if metrics != nil {
			c.Metrics = metrics
		}
	}
}

// WithReminderOutput sets where locally fired reminders are printed.
func WithReminderOutput(w io.Writer) Option {
	return func(c *Container) {
		if w != nil {
			c.reminderOut = w
		}
	}
}

// NewContainer opens the configured slot, loads the task store from it and
// builds the handlers.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config:      cfg,
		Logger:      logger,
		Metrics:     observability.NoopMetrics{},
		reminderOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	slot, err := persistence.OpenSlot(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	c.Slot = slot
	c.Repo = persistence.NewSlotRepository(slot, logger)
	c.closers = append(c.closers, c.Repo)
	logger.Debug("task slot opened", "store", cfg.Store, "slot", slot.Name())

	c.Manager, err = services.NewManager(ctx, c.Repo,
		services.WithLocation(loc),
		services.WithLogger(logger),
		services.WithMetrics(c.Metrics),
	)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	if err := c.initReminders(ctx); err != nil {
		c.Close()
		return nil, err
	}

	c.AddTaskHandler = commands.NewAddTaskHandler(c.Manager, c.Reminders, logger)
	c.UpdateTaskHandler = commands.NewUpdateTaskHandler(c.Manager, c.Reminders, logger)
	c.DeleteTaskHandler = commands.NewDeleteTaskHandler(c.Manager, c.Reminders, logger)

	c.ListTasksHandler = queries.NewListTasksHandler(c.Manager)
	c.GetTaskHandler = queries.NewGetTaskHandler(c.Manager)
	c.ListDaysHandler = queries.NewListDaysHandler(c.Manager)

	return c, nil
}

func (c *Container) initReminders(ctx context.Context) error {
	switch c.Config.Reminders {
	case config.RemindersNone, "":
		return nil

	case config.RemindersTimer:
		bus := eventbus.NewInProcessBus(c.Logger)
		bus.RegisterConsumer(reminders.NewNotifier(c.reminderOut, c.Manager.Location(), false))
		c.EventPublisher = bus

		scheduler := reminders.NewTimerScheduler(
			reminders.PublishDue(bus, c.Logger),
			reminders.WithTimerLogger(c.Logger),
			reminders.WithTimerMetrics(c.Metrics),
		)
		restored := scheduler.Restore(ctx, c.Manager.GetAllTasks())
		c.Logger.Debug("reminders restored", "count", restored)

		c.Reminders = scheduler
		c.closers = append(c.closers, scheduler, bus)
		return nil

	case config.RemindersRabbitMQ:
		publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, eventbus.ExchangeName, c.Logger)
		if err != nil {
			if !c.Config.IsDevelopment() {
				return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
			}
			c.Logger.Warn("RabbitMQ not available, using noop publisher", observability.ErrorKey, err.Error())
			c.EventPublisher = eventbus.NewNoopPublisher(c.Logger)
		} else {
			c.EventPublisher = publisher
		}

		scheduler := reminders.NewPublishingScheduler(c.EventPublisher, c.Logger, c.Metrics)
		c.Reminders = scheduler
		c.closers = append(c.closers, scheduler)
		return nil

	default:
		return fmt.Errorf("unknown reminders backend %q", c.Config.Reminders)
	}
}

// Close stops reminders and releases the slot. State left behind by a failed
// write gets one more attempt first.
func (c *Container) Close() error {
	var errs []error

	if c.Manager != nil && c.Manager.Dirty() {
		if err := c.Manager.Flush(context.Background()); err != nil {
			c.Logger.Warn("failed to flush tasks on close", observability.ErrorKey, err.Error())
			errs = append(errs, err)
		}
	}

	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			c.Logger.Warn("error closing resource", observability.ErrorKey, err.Error())
			errs = append(errs, err)
		}
	}
	c.closers = nil

	return errors.Join(errs...)
}
