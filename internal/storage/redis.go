package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/qistonpe/invoice-dashboard/internal/invoice"
)

// SnapshotKey is the fixed key the single-tenant collection lives under.
const SnapshotKey = "qistonpe:invoices"

// RedisStore keeps the snapshot blob under one Redis key.
type RedisStore struct {
	logger *slog.Logger
	client *redis.Client
}

// NewRedisStore builds a RedisStore instance.
func NewRedisStore(logger *slog.Logger, client *redis.Client) *RedisStore {
	return &RedisStore{logger: logger, client: client}
}

// Load reads the snapshot. A missing key or an unreadable blob yields
// (nil, nil): the caller falls back to seeding a fresh collection.
func (s *RedisStore) Load(ctx context.Context) ([]invoice.Invoice, error) {
	blob, err := s.client.Get(ctx, SnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: redis get: %w", err)
	}

	invoices, err := Decode(blob)
	if err != nil {
		s.logger.Warn("discarding unreadable snapshot", slog.Any("error", err))
		return nil, nil
	}
	return invoices, nil
}

// Save writes the snapshot blob.
func (s *RedisStore) Save(ctx context.Context, invoices []invoice.Invoice) error {
	blob, err := Encode(invoices)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, SnapshotKey, blob, 0).Err(); err != nil {
		return fmt.Errorf("storage: redis set: %w", err)
	}
	return nil
}
