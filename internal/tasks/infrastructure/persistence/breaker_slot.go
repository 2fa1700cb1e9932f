package persistence

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
)

// BreakerConfig configures a BreakerSlot.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens
	// the circuit.
	FailureThreshold uint32

	// Timeout is how long the circuit stays open before a trial request.
	Timeout time.Duration

	// MaxRequests is the number of trial requests in the half-open state.
	MaxRequests uint32
}

// DefaultBreakerConfig returns the settings used for remote slots.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 3,
		Timeout:          30 * time.Second,
		MaxRequests:      1,
	}
}

// BreakerSlot guards a remote slot with a circuit breaker. While the circuit
// is open, calls fail fast with gobreaker.ErrOpenState without reaching the
// server. A missing slot is not counted as a failure.
type BreakerSlot struct {
	next    Slot
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewBreakerSlot wraps next.
func NewBreakerSlot(next Slot, cfg BreakerConfig, logger *slog.Logger) *BreakerSlot {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultBreakerConfig().FailureThreshold
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}

	settings := gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("slot circuit breaker state changed",
				"slot", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, task.ErrSlotNotFound)
		},
	}

	return &BreakerSlot{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

func (s *BreakerSlot) Name() string { return s.next.Name() }

func (s *BreakerSlot) Read(ctx context.Context) ([]byte, error) {
	return s.breaker.Execute(func() ([]byte, error) {
		return s.next.Read(ctx)
	})
}

func (s *BreakerSlot) Write(ctx context.Context, data []byte) error {
	_, err := s.breaker.Execute(func() ([]byte, error) {
		return nil, s.next.Write(ctx, data)
	})
	return err
}

// State reports the current circuit state.
func (s *BreakerSlot) State() gobreaker.State {
	return s.breaker.State()
}

// Close closes the wrapped slot.
func (s *BreakerSlot) Close() error {
	if closer, ok := s.next.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
