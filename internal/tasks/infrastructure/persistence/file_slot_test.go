package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
)

func TestFileSlot_Contract(t *testing.T) {
	testSlotContract(t, NewFileSlot(filepath.Join(t.TempDir(), "nested", "tasks.json")))
}

func TestFileSlot_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	slot := NewFileSlot(filepath.Join(dir, "tasks.json"))

	for i := 0; i < 3; i++ {
		require.NoError(t, slot.Write(context.Background(), []byte("{}")))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "tasks.json", entries[0].Name())
}

func TestFileSlot_ReadError(t *testing.T) {
	dir := t.TempDir()
	// A directory in place of the file is a read failure, not a missing slot.
	slot := NewFileSlot(dir)

	_, err := slot.Read(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, task.ErrSlotNotFound)
}

func TestFileSlot_WithRepository(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.json")
	state := sampleState(t)

	require.NoError(t, NewSlotRepository(NewFileSlot(path), nil).Save(ctx, state))

	// A fresh repository sees what the previous one saved.
	loaded, err := NewSlotRepository(NewFileSlot(path), nil).Load(ctx)
	require.NoError(t, err)
	assert.True(t, state.Equal(loaded))
}
