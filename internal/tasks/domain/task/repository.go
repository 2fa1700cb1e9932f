package task

import "context"

// StateRepository stores the whole day→tasks mapping in one durable slot.
//
// Save fails with an error wrapping ErrEncoding or ErrWrite. Load fails with
// ErrSlotNotFound when the slot has never been written, with an error
// wrapping ErrRead when the medium cannot be read and with an error wrapping
// ErrDecoding when the stored bytes are malformed.
type StateRepository interface {
	Save(ctx context.Context, state State) error
	Load(ctx context.Context) (State, error)
}
