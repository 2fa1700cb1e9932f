package persistence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
)

// Slot is one named durable location holding the encoded state.
//
// Read returns task.ErrSlotNotFound when nothing was ever written. Write
// replaces the whole content; a reader never observes a partial write.
type Slot interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// SlotRepository implements task.StateRepository on top of a Slot.
type SlotRepository struct {
	slot   Slot
	codec  StateCodec
	logger *slog.Logger
}

// NewSlotRepository creates a repository that encodes state into slot.
func NewSlotRepository(slot Slot, logger *slog.Logger) *SlotRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlotRepository{
		slot:   slot,
		logger: logger.With("slot", slot.Name()),
	}
}

// Save encodes and writes the full state.
func (r *SlotRepository) Save(ctx context.Context, state task.State) error {
	data, err := r.codec.Encode(state)
	if err != nil {
		return err
	}

	if err := r.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("%w: slot %s: %w", task.ErrWrite, r.slot.Name(), err)
	}

	r.logger.DebugContext(ctx, "state saved", "days", len(state), "bytes", len(data))
	return nil
}

// Load reads and decodes the full state.
func (r *SlotRepository) Load(ctx context.Context) (task.State, error) {
	data, err := r.slot.Read(ctx)
	if err != nil {
		if errors.Is(err, task.ErrSlotNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: slot %s: %w", task.ErrRead, r.slot.Name(), err)
	}

	state, err := r.codec.Decode(data)
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "state loaded", "days", len(state), "bytes", len(data))
	return state, nil
}

// Close releases the slot's connection, if it holds one.
func (r *SlotRepository) Close() error {
	if closer, ok := r.slot.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
