package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/tasklist/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/tasklist/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
	"github.com/lib/pq"
)

// SQLiteSlot stores the state as one row of a slot table in SQLite.
type SQLiteSlot struct {
	db     *sql.DB
	name   string
	table  string
	ownsDB bool
}

// OpenSQLiteSlot opens the database at path, creates the slot table and
// returns a slot that closes the database on Close.
func OpenSQLiteSlot(ctx context.Context, path, table, name string) (*SQLiteSlot, error) {
	db, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, err
	}

	slot, err := NewSQLiteSlot(ctx, db, table, name)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	slot.ownsDB = true
	return slot, nil
}

// NewSQLiteSlot uses an existing database. The caller keeps ownership of db.
func NewSQLiteSlot(ctx context.Context, db *sql.DB, table, name string) (*SQLiteSlot, error) {
	if err := migrations.RunSQLiteMigrations(ctx, db, table); err != nil {
		return nil, err
	}
	return &SQLiteSlot{
		db:    db,
		name:  name,
		table: pq.QuoteIdentifier(table),
	}, nil
}

func (s *SQLiteSlot) Name() string { return "sqlite:" + s.name }

func (s *SQLiteSlot) Read(ctx context.Context) ([]byte, error) {
	query := fmt.Sprintf(`SELECT payload FROM %s WHERE name = ?`, s.table)

	var payload []byte
	err := s.db.QueryRowContext(ctx, query, s.name).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, task.ErrSlotNotFound
		}
		return nil, err
	}
	return payload, nil
}

func (s *SQLiteSlot) Write(ctx context.Context, data []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, s.table)

	_, err := s.db.ExecContext(ctx, query, s.name, data, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// Close closes the database when the slot opened it.
func (s *SQLiteSlot) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}
