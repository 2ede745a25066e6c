package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/balanza-app/balanza/internal/app"
	"github.com/balanza-app/balanza/internal/inventory"
	"github.com/balanza-app/balanza/internal/ledger"
	"github.com/balanza-app/balanza/internal/metadata"
	"github.com/balanza-app/balanza/internal/observability"
	"github.com/balanza-app/balanza/internal/platform/cache"
	"github.com/balanza-app/balanza/internal/platform/db"
	"github.com/balanza-app/balanza/internal/statements"
	statementhttp "github.com/balanza-app/balanza/internal/statements/http"
	"github.com/balanza-app/balanza/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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
		// Statements still compute without the cache, each request just pays
		// the full derivation cost.
		logger.Warn("redis unavailable, caching disabled", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	classification, err := statements.LoadClassification(cfg.ClassificationConfigPath)
	if err != nil {
		logger.Error("load classification config", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	ledgerRepo := ledger.NewRepository(pool)
	registry := inventory.NewRegistry(inventory.NewRepository(pool))
	var statementCache *statements.Cache
	if redisClient != nil {
		statementCache = statements.NewCache(redisClient, cfg.StatementCacheTTL)
	}
	statementService := statements.NewService(ledgerRepo, ledgerRepo, registry, classification, statementCache, logger, metrics)
	statementHandler := statementhttp.NewHandler(statementService, logger, metrics)

	metadataService := metadata.NewService(metadata.NewRepository(pool))
	metadataHandler := metadata.NewHandler(metadataService, logger)

	var inspector *asynq.Inspector
	if redisClient != nil {
		inspector = asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	}

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		StatementHandler: statementHandler,
		MetadataHandler:  metadataHandler,
		JobHandler:       jobs.NewHandler(inspector, logger),
		Metrics:          metrics,
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
