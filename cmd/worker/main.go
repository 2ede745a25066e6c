package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/balanza-app/balanza/internal/app"
	"github.com/balanza-app/balanza/internal/inventory"
	"github.com/balanza-app/balanza/internal/ledger"
	"github.com/balanza-app/balanza/internal/observability"
	"github.com/balanza-app/balanza/internal/platform/cache"
	"github.com/balanza-app/balanza/internal/platform/db"
	"github.com/balanza-app/balanza/internal/statements"
	"github.com/balanza-app/balanza/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	classification, err := statements.LoadClassification(cfg.ClassificationConfigPath)
	if err != nil {
		logger.Error("load classification config", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	ledgerRepo := ledger.NewRepository(pool)
	registry := inventory.NewRegistry(inventory.NewRepository(pool))
	statementCache := statements.NewCache(redisClient, cfg.StatementCacheTTL)
	statementService := statements.NewService(ledgerRepo, ledgerRepo, registry, classification, statementCache, logger, metrics)

	warmupJob := jobs.NewStatementWarmupJob(statementService, pool, logger, nil)
	bumpJob := jobs.NewCacheBumpJob(statementCache, logger, nil)

	warmupTask, err := jobs.NewStatementWarmupTask(jobs.StatementWarmupPayload{})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskStatementWarmup, Handler: warmupJob.Handle},
			{Type: jobs.TaskCacheBump, Handler: bumpJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "15 1 * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
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
