// Command seed writes a fresh sample snapshot to the configured
// storage backend. Pass -force to overwrite an existing snapshot.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/qistonpe/invoice-dashboard/internal/app"
	"github.com/qistonpe/invoice-dashboard/internal/invoice"
	"github.com/qistonpe/invoice-dashboard/internal/platform/cache"
	"github.com/qistonpe/invoice-dashboard/internal/platform/db"
	"github.com/qistonpe/invoice-dashboard/internal/storage"
)

func main() {
	force := flag.Bool("force", false, "overwrite an existing snapshot")
	flag.Parse()

	ctx := context.Background()

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg)

	store, cleanup, err := newSnapshotStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("init snapshot store: %v", err)
	}
	defer cleanup()

	existing, err := store.Load(ctx)
	if err != nil {
		log.Fatalf("load snapshot: %v", err)
	}
	if len(existing) > 0 && !*force {
		log.Fatalf("snapshot already holds %d invoices; pass -force to overwrite", len(existing))
	}

	invoices := invoice.SampleInvoices(invoice.Today(), nil)
	if err := store.Save(ctx, invoices); err != nil {
		log.Fatalf("save snapshot: %v", err)
	}
	fmt.Printf("seeded %d invoices into %s backend\n", len(invoices), cfg.StorageBackend)
}

func newSnapshotStore(ctx context.Context, cfg *app.Config, logger *slog.Logger) (invoice.SnapshotStore, func(), error) {
	switch cfg.StorageBackend {
	case app.BackendRedis:
		client, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedisStore(logger, client), func() { _ = client.Close() }, nil
	case app.BackendPostgres:
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, err
		}
		store, err := storage.NewPostgresStore(ctx, logger, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	case app.BackendFile:
		return storage.NewFileStore(logger, cfg.SnapshotFile), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
