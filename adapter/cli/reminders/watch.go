package reminders

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tasklist/adapter/cli"
	"github.com/felixgeelhaar/tasklist/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/tasklist/internal/tasks/infrastructure/reminders"
	"github.com/felixgeelhaar/tasklist/pkg/config"
)

var (
	watchQueue string
	watchAll   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print reminders published to RabbitMQ",
	Long: `Consume reminder events from RabbitMQ and print each reminder when
its task comes due. Runs until interrupted.

Examples:
  tasklist reminders watch
  tasklist reminders watch --all          # also print scheduling changes
  tasklist reminders watch --queue laptop # one queue per watcher`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}
		logger := cli.Logger()

		consumer, err := eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
			URL:       cfg.RabbitMQURL,
			QueueName: watchQueue,
			Exchange:  eventbus.ExchangeName,
			Logger:    logger,
		})
		if err != nil {
			return err
		}
		defer consumer.Close()

		w := newWatcher(cmd.OutOrStdout(), loc, watchAll, logger)
		defer w.Close()
		for _, c := range w.consumers {
			consumer.RegisterConsumer(c)
		}

		err = consumer.Start(cmd.Context())
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

// watcher relays scheduled reminders onto local timers and prints them
// through an in-process bus when they fire.
type watcher struct {
	scheduler *reminders.TimerScheduler
	bus       *eventbus.InProcessBus
	consumers []eventbus.EventConsumer
}

func newWatcher(out io.Writer, loc *time.Location, all bool, logger *slog.Logger) *watcher {
	bus := eventbus.NewInProcessBus(logger)
	bus.RegisterConsumer(reminders.NewNotifier(out, loc, false))

	scheduler := reminders.NewTimerScheduler(
		reminders.PublishDue(bus, logger),
		reminders.WithTimerLogger(logger),
	)

	w := &watcher{
		scheduler: scheduler,
		bus:       bus,
		consumers: []eventbus.EventConsumer{reminders.NewRelay(scheduler)},
	}
	if all {
		w.consumers = append(w.consumers, changesOnly{reminders.NewNotifier(out, loc, true)})
	}
	return w
}

func (w *watcher) Close() {
	_ = w.scheduler.Close()
	_ = w.bus.Close()
}

// changesOnly narrows a notifier to scheduling changes; due reminders are
// printed by the local bus.
type changesOnly struct {
	*reminders.Notifier
}

func (changesOnly) EventTypes() []string {
	return []string{reminders.RoutingScheduled, reminders.RoutingCancelled}
}

func init() {
	watchCmd.Flags().StringVarP(&watchQueue, "queue", "q", eventbus.DefaultConsumerQueueName, "RabbitMQ queue to consume")
	watchCmd.Flags().BoolVarP(&watchAll, "all", "a", false, "also print scheduled and cancelled reminders")
}
