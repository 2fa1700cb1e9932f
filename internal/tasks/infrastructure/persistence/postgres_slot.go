package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/tasklist/internal/shared/infrastructure/database/postgres"
	"github.com/felixgeelhaar/tasklist/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// PostgresSlot stores the state as one row of a slot table in PostgreSQL.
type PostgresSlot struct {
	pool     *pgxpool.Pool
	name     string
	table    string
	ownsPool bool
}

// OpenPostgresSlot connects to url, creates the slot table and returns a
// slot that closes the pool on Close.
func OpenPostgresSlot(ctx context.Context, url, table, name string) (*PostgresSlot, error) {
	pool, err := postgres.Open(ctx, url, 4)
	if err != nil {
		return nil, err
	}

	slot, err := NewPostgresSlot(ctx, pool, table, name)
	if err != nil {
		pool.Close()
		return nil, err
	}
	slot.ownsPool = true
	return slot, nil
}

// NewPostgresSlot uses an existing pool. The caller keeps ownership of pool.
func NewPostgresSlot(ctx context.Context, pool *pgxpool.Pool, table, name string) (*PostgresSlot, error) {
	if err := migrations.RunPostgresMigrations(ctx, pool, table); err != nil {
		return nil, err
	}
	return &PostgresSlot{
		pool:  pool,
		name:  name,
		table: pq.QuoteIdentifier(table),
	}, nil
}

func (s *PostgresSlot) Name() string { return "postgres:" + s.name }

func (s *PostgresSlot) Read(ctx context.Context) ([]byte, error) {
	query := fmt.Sprintf(`SELECT payload FROM %s WHERE name = $1`, s.table)

	var payload []byte
	err := s.pool.QueryRow(ctx, query, s.name).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, task.ErrSlotNotFound
		}
		return nil, err
	}
	return payload, nil
}

func (s *PostgresSlot) Write(ctx context.Context, data []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, payload, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`, s.table)

	_, err := s.pool.Exec(ctx, query, s.name, data)
	return err
}

// Close closes the pool when the slot opened it.
func (s *PostgresSlot) Close() error {
	if s.ownsPool {
		s.pool.Close()
	}
	return nil
}
