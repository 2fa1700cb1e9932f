package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

// RunSQLiteMigrations executes all SQLite migrations in order.
func RunSQLiteMigrations(ctx context.Context, db *sql.DB, table string) error {
	statements, err := upMigrations("sqlite", table)
	if err != nil {
		return err
	}

	for _, m := range statements {
		// CREATE TABLE IF NOT EXISTS is idempotent
		if _, err := db.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", m.file, err)
		}
	}
	return nil
}
