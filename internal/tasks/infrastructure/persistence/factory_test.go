package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/tasklist/pkg/config"
)

func testConfig(t *testing.T, store string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Store:                   store,
		SlotName:                "tasks",
		DataDir:                 dir,
		FilePath:                filepath.Join(dir, "tasks.json"),
		SQLitePath:              filepath.Join(dir, "tasks.db"),
		SlotTable:               "task_slots",
		BreakerEnabled:          true,
		BreakerTimeout:          time.Second,
		BreakerFailureThreshold: 3,
	}
}

func TestOpenSlot_Local(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		store    string
		wantType any
	}{
		{store: config.StoreMemory, wantType: &MemorySlot{}},
		{store: config.StoreFile, wantType: &FileSlot{}},
		{store: config.StoreSQLite, wantType: &SQLiteSlot{}},
	}

	for _, tt := range tests {
		t.Run(tt.store, func(t *testing.T) {
			slot, err := OpenSlot(ctx, testConfig(t, tt.store), discardLogger())
			require.NoError(t, err)
			defer NewSlotRepository(slot, nil).Close()

			assert.IsType(t, tt.wantType, slot)
			testSlotContract(t, slot)
		})
	}
}

func TestOpenSlot_SQLiteDatabaseURL(t *testing.T) {
	cfg := testConfig(t, config.StoreSQLite)
	path := filepath.Join(t.TempDir(), "custom.db")
	cfg.DatabaseURL = "sqlite://" + path

	slot, err := OpenSlot(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	defer NewSlotRepository(slot, nil).Close()

	assert.FileExists(t, path)
}

func TestOpenSlot_WebDAVIsGuarded(t *testing.T) {
	srv, _ := newWebDAVServer(t)
	cfg := testConfig(t, config.StoreWebDAV)
	cfg.WebDAVURL = srv.URL
	cfg.WebDAVPath = "/tasks.json"

	slot, err := OpenSlot(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &BreakerSlot{}, slot)

	cfg.BreakerEnabled = false
	slot, err = OpenSlot(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &WebDAVSlot{}, slot)
}

func TestOpenSlot_Errors(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig(t, "carrier-pigeon")
	_, err := OpenSlot(ctx, cfg, discardLogger())
	assert.Error(t, err)

	cfg = testConfig(t, config.StorePostgres)
	cfg.DatabaseURL = "/var/lib/tasks.db"
	_, err = OpenSlot(ctx, cfg, discardLogger())
	assert.ErrorContains(t, err, "PostgreSQL URL")
}
