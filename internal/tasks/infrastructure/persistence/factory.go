package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/felixgeelhaar/tasklist/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/tasklist/pkg/config"
)

// OpenSlot creates the slot selected by cfg.Store. Remote slots (postgres,
// redis, webdav) are wrapped in a BreakerSlot when cfg.BreakerEnabled is set.
func OpenSlot(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Slot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		slot   Slot
		remote bool
		err    error
	)

	switch cfg.Store {
	case config.StoreMemory:
		slot = NewMemorySlot(cfg.SlotName)

	case config.StoreFile:
		slot = NewFileSlot(cfg.FilePath)

	case config.StoreSQLite:
		path := cfg.SQLitePath
		// A SQLite DATABASE_URL overrides the default file location.
		if cfg.DatabaseURL != "" && database.DetectDriver(cfg.DatabaseURL) == database.DriverSQLite {
			path = database.SQLitePath(cfg.DatabaseURL)
		}
		slot, err = OpenSQLiteSlot(ctx, path, cfg.SlotTable, cfg.SlotName)

	case config.StorePostgres:
		if driver := database.DetectDriver(cfg.DatabaseURL); driver != database.DriverPostgres {
			return nil, fmt.Errorf("DATABASE_URL is a %s URL, the postgres store needs a PostgreSQL URL", driver)
		}
		slot, err = OpenPostgresSlot(ctx, cfg.DatabaseURL, cfg.SlotTable, cfg.SlotName)
		remote = true

	case config.StoreRedis:
		slot, err = OpenRedisSlot(ctx, cfg.RedisURL, cfg.SlotName)
		remote = true

	case config.StoreWebDAV:
		filePath := cfg.WebDAVPath
		if filePath == "" {
			filePath = filepath.ToSlash(filepath.Join("/tasklist", cfg.SlotName+".json"))
		}
		slot, err = NewWebDAVSlot(ctx, nil, cfg.WebDAVURL, filePath, WebDAVAuth{
			Username: cfg.WebDAVUsername,
			Password: cfg.WebDAVPassword,
			Token:    cfg.WebDAVToken,
		})
		remote = true

	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}

	if remote && cfg.BreakerEnabled {
		slot = NewBreakerSlot(slot, BreakerConfig{
			FailureThreshold: cfg.BreakerFailureThreshold,
			Timeout:          cfg.BreakerTimeout,
		}, logger)
	}

	logger.Info("task store opened", "store", cfg.Store, "slot", slot.Name())
	return slot, nil
}
