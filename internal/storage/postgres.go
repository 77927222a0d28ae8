package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qistonpe/invoice-dashboard/internal/invoice"
	"github.com/qistonpe/invoice-dashboard/internal/platform/db"
)

const snapshotNamespace = "invoices"

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS invoice_snapshots (
    namespace  TEXT PRIMARY KEY,
    blob       JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore keeps the snapshot blob in a single row keyed by
// namespace.
type PostgresStore struct {
	logger *slog.Logger
	pool   *pgxpool.Pool
}

// NewPostgresStore builds a PostgresStore and ensures its table exists.
func NewPostgresStore(ctx context.Context, logger *slog.Logger, pool *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, snapshotSchema); err != nil {
		return nil, fmt.Errorf("storage: ensure snapshot table: %w", err)
	}
	return &PostgresStore{logger: logger, pool: pool}, nil
}

// Load reads the snapshot row. A missing row or an unreadable blob
// yields (nil, nil): the caller falls back to seeding a fresh
// collection.
func (s *PostgresStore) Load(ctx context.Context) ([]invoice.Invoice, error) {
	var blob []byte
	err := s.pool.QueryRow(ctx,
		`SELECT blob FROM invoice_snapshots WHERE namespace = $1`, snapshotNamespace,
	).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: select snapshot: %w", err)
	}

	invoices, err := Decode(blob)
	if err != nil {
		s.logger.Warn("discarding unreadable snapshot", slog.Any("error", err))
		return nil, nil
	}
	return invoices, nil
}

// Save upserts the snapshot row.
func (s *PostgresStore) Save(ctx context.Context, invoices []invoice.Invoice) error {
	blob, err := Encode(invoices)
	if err != nil {
		return err
	}

	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO invoice_snapshots (namespace, blob, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (namespace)
			DO UPDATE SET blob = EXCLUDED.blob, updated_at = now()`,
			snapshotNamespace, blob,
		)
		if err != nil {
			return fmt.Errorf("storage: upsert snapshot: %w", err)
		}
		return nil
	})
}
