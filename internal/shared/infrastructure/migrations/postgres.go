package migrations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunPostgresMigrations executes all PostgreSQL migrations in order.
func RunPostgresMigrations(ctx context.Context, pool *pgxpool.Pool, table string) error {
	statements, err := upMigrations("postgres", table)
	if err != nil {
		return err
	}

	for _, m := range statements {
		if _, err := pool.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", m.file, err)
		}
	}
	return nil
}
