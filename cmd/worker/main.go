package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/qistonpe/invoice-dashboard/internal/app"
	"github.com/qistonpe/invoice-dashboard/internal/invoice"
	"github.com/qistonpe/invoice-dashboard/internal/platform/cache"
	"github.com/qistonpe/invoice-dashboard/internal/platform/db"
	"github.com/qistonpe/invoice-dashboard/internal/storage"
	"github.com/qistonpe/invoice-dashboard/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	store, cleanup, err := newSnapshotStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("init snapshot store", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	overdueJob := jobs.NewOverdueScanJob(store, logger, nil)

	overdueTask, err := jobs.NewOverdueScanTask(jobs.OverdueScanPayload{})
	if err != nil {
		logger.Error("build overdue task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskInvoiceOverdueScan, Handler: overdueJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 1 * * *", Task: overdueTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}

// newSnapshotStore builds the configured persistence backend.
func newSnapshotStore(ctx context.Context, cfg *app.Config, logger *slog.Logger) (invoice.SnapshotStore, func(), error) {
	switch cfg.StorageBackend {
	case app.BackendRedis:
		client, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
		return storage.NewRedisStore(logger, client), cleanup, nil
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
