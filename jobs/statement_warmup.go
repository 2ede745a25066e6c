package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	jobmetrics "github.com/balanza-app/balanza/internal/jobs"
	"github.com/balanza-app/balanza/internal/statements"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// StatementWarmupJob pre-populates the statement cache for active owners so
// the first dashboard load of the day hits warm entries.
type StatementWarmupJob struct {
	Statements *statements.Service
	Pool       *pgxpool.Pool
	Logger     *slog.Logger
	Metrics    *jobmetrics.Metrics
	clock      func() time.Time
}

// NewStatementWarmupJob wires dependencies for the warmup handler.
func NewStatementWarmupJob(svc *statements.Service, pool *pgxpool.Pool, logger *slog.Logger, metrics *jobmetrics.Metrics) *StatementWarmupJob {
	return &StatementWarmupJob{
		Statements: svc,
		Pool:       pool,
		Logger:     logger,
		Metrics:    metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes statement warmup tasks.
func (j *StatementWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("statement warmup: handler not configured")
	}
	var payload StatementWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskStatementWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	logger.Info("starting statement warmup")

	owners := payload.OwnerIDs
	if len(owners) == 0 {
		var err error
		owners, err = j.fetchOwners(ctx)
		if err != nil {
			resultErr = err
			logger.Error("load warmup owners", slog.Any("error", err))
			return resultErr
		}
	}
	if len(owners) == 0 {
		logger.Info("no owners discovered for warmup")
		return resultErr
	}

	now := j.now()
	warmed := 0
	for _, ownerID := range owners {
		if err := j.warmOwner(ctx, ownerID, now); err != nil {
			resultErr = err
			logger.Error("warm owner", slog.Int64("owner_id", ownerID), slog.Any("error", err))
			return resultErr
		}
		warmed++
	}

	logger.Info("completed statement warmup", slog.Int("owners", warmed), slog.Duration("duration", time.Since(now)))
	return resultErr
}

func (j *StatementWarmupJob) warmOwner(ctx context.Context, ownerID int64, now time.Time) error {
	if j.Statements == nil {
		return nil
	}
	ownerCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	current := statements.MonthSelection(now.Year(), now.Month())
	prior := statements.MonthSelection(now.AddDate(0, -1, 0).Year(), now.AddDate(0, -1, 0).Month())

	res := j.Statements.Generate(ownerCtx, ownerID, current, &prior)
	if res.Degraded {
		return errors.New("degraded warmup run")
	}
	return ownerCtx.Err()
}

func (j *StatementWarmupJob) fetchOwners(ctx context.Context) ([]int64, error) {
	if j.Pool == nil {
		return nil, errors.New("statement warmup: pool not configured")
	}
	rows, err := j.Pool.Query(ctx, `SELECT DISTINCT je.owner_id FROM journal_entries je WHERE je.status = 'POSTED' ORDER BY je.owner_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	owners := make([]int64, 0)
	for rows.Next() {
		var ownerID int64
		if err := rows.Scan(&ownerID); err != nil {
			return nil, err
		}
		owners = append(owners, ownerID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return owners, nil
}

func (j *StatementWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskStatementWarmup))
	}
	return slog.Default().With(slog.String("job", TaskStatementWarmup))
}

func (j *StatementWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *StatementWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
