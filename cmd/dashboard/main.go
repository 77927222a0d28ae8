package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/qistonpe/invoice-dashboard/internal/app"
	"github.com/qistonpe/invoice-dashboard/internal/invoice"
	"github.com/qistonpe/invoice-dashboard/internal/observability"
	"github.com/qistonpe/invoice-dashboard/internal/platform/cache"
	"github.com/qistonpe/invoice-dashboard/internal/platform/db"
	"github.com/qistonpe/invoice-dashboard/internal/shared"
	"github.com/qistonpe/invoice-dashboard/internal/storage"
	"github.com/qistonpe/invoice-dashboard/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	store, redisClient, cleanup, err := newSnapshotStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("init snapshot store", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	auditLogger := shared.NewAuditLogger(logger, redisClient)

	service := invoice.NewService(logger, store, auditLogger)
	service.Init(ctx)

	metrics := observability.NewMetrics()
	invoiceHandler := invoice.NewHandler(logger, service, metrics)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		InvoiceHandler: invoiceHandler,
		JobHandler:     jobHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

// newSnapshotStore builds the configured persistence backend. The redis
// client is non-nil only for the redis backend; cleanup releases
// whichever resources were opened.
func newSnapshotStore(ctx context.Context, cfg *app.Config, logger *slog.Logger) (invoice.SnapshotStore, *redis.Client, func(), error) {
	switch cfg.StorageBackend {
	case app.BackendRedis:
		client, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
		return storage.NewRedisStore(logger, client), client, cleanup, nil
	case app.BackendPostgres:
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, nil, err
		}
		store, err := storage.NewPostgresStore(ctx, logger, pool)
		if err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return store, nil, pool.Close, nil
	case app.BackendFile:
		return storage.NewFileStore(logger, cfg.SnapshotFile), nil, func() {}, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
