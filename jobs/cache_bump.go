package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/balanza-app/balanza/internal/jobs"
	"github.com/balanza-app/balanza/internal/statements"
)

// CacheBumpJob advances the statement cache version after posting activity,
// expiring every cached result at once.
type CacheBumpJob struct {
	Cache   *statements.Cache
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewCacheBumpJob wires dependencies for the invalidation handler.
func NewCacheBumpJob(cache *statements.Cache, logger *slog.Logger, metrics *jobmetrics.Metrics) *CacheBumpJob {
	return &CacheBumpJob{Cache: cache, Logger: logger, Metrics: metrics}
}

// Handle processes cache bump tasks.
func (j *CacheBumpJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("cache bump: handler not configured")
	}
	var payload CacheBumpPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskCacheBump)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	if j.Cache == nil {
		return resultErr
	}
	if err := j.Cache.Bump(ctx); err != nil {
		resultErr = err
		j.logger().Error("bump statement cache", slog.Any("error", err))
		return resultErr
	}
	j.logger().Info("statement cache bumped", slog.String("reason", payload.Reason))
	return resultErr
}

func (j *CacheBumpJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskCacheBump))
	}
	return slog.Default().With(slog.String("job", TaskCacheBump))
}

func (j *CacheBumpJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
