package reminders

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/felixgeelhaar/tasklist/internal/shared/infrastructure/eventbus"
)

// Notifier prints reminder events as lines of text. It consumes
// reminder.due by default and can follow scheduling events too.
type Notifier struct {
	mu     sync.Mutex
	out    io.Writer
	loc    *time.Location
	events []string
}

var _ eventbus.EventConsumer = (*Notifier)(nil)

// NewNotifier writes to out, rendering times in loc. With all set it also
// reports reminder.scheduled and reminder.cancelled.
func NewNotifier(out io.Writer, loc *time.Location, all bool) *Notifier {
	if loc == nil {
		loc = time.Local
	}
	events := []string{RoutingDue}
	if all {
		events = append(events, RoutingScheduled, RoutingCancelled)
	}
	return &Notifier{out: out, loc: loc, events: events}
}

func (n *Notifier) EventTypes() []string { return n.events }

func (n *Notifier) Handle(ctx context.Context, event *eventbus.Event) error {
	var line string
	switch event.RoutingKey {
	case RoutingCancelled:
		line = fmt.Sprintf("cancelled  %s", event.TaskID)
	case RoutingDue, RoutingScheduled:
		var p Payload
		if err := event.DecodePayload(&p); err != nil {
			return err
		}
		label := "due"
		if event.RoutingKey == RoutingScheduled {
			label = "scheduled"
		}
		line = fmt.Sprintf("%-10s %s  %s [%s] %s",
			label, p.DueDate.In(n.loc).Format("2006-01-02 15:04"), p.Title, p.Priority, p.TaskID)
	default:
		return nil
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintln(n.out, line)
	return err
}
