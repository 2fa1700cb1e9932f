package persistence

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
)

// MemorySlot keeps the encoded state in process memory.
type MemorySlot struct {
	mu      sync.RWMutex
	name    string
	data    []byte
	written bool

	// ReadErr and WriteErr, when set, are returned instead of touching the
	// data. Tests use them to simulate a failing medium.
	ReadErr  error
	WriteErr error
}

// NewMemorySlot creates an empty, never-written slot.
func NewMemorySlot(name string) *MemorySlot {
	return &MemorySlot{name: name}
}

func (s *MemorySlot) Name() string { return s.name }

func (s *MemorySlot) Read(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	if !s.written {
		return nil, task.ErrSlotNotFound
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Write(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.data = append([]byte(nil), data...)
	s.written = true
	return nil
}

// Bytes returns a copy of the stored bytes.
func (s *MemorySlot) Bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.data...)
}

// SetFailures replaces the simulated read and write errors.
func (s *MemorySlot) SetFailures(readErr, writeErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ReadErr = readErr
	s.WriteErr = writeErr
}
