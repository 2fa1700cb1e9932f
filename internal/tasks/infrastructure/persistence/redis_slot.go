package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix namespaces slot keys.
const RedisKeyPrefix = "tasklist:slot:"

// RedisSlot stores the state under a single Redis key with no expiry.
type RedisSlot struct {
	rdb        *redis.Client
	name       string
	ownsClient bool
}

// OpenRedisSlot connects to url and verifies the connection.
func OpenRedisSlot(ctx context.Context, url, name string) (*RedisSlot, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slot := NewRedisSlot(rdb, name)
	slot.ownsClient = true
	return slot, nil
}

// NewRedisSlot uses an existing client. The caller keeps ownership of rdb.
func NewRedisSlot(rdb *redis.Client, name string) *RedisSlot {
	return &RedisSlot{rdb: rdb, name: name}
}

func (s *RedisSlot) key() string { return RedisKeyPrefix + s.name }

func (s *RedisSlot) Name() string { return "redis:" + s.name }

func (s *RedisSlot) Read(ctx context.Context) ([]byte, error) {
	b, err := s.rdb.Get(ctx, s.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, task.ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *RedisSlot) Write(ctx context.Context, data []byte) error {
	return s.rdb.Set(ctx, s.key(), data, 0).Err()
}

// Close closes the client when the slot opened it.
func (s *RedisSlot) Close() error {
	if !s.ownsClient {
		return nil
	}
	return s.rdb.Close()
}
