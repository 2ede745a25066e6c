package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskStatementWarmup pre-computes financial statements for active owners.
	TaskStatementWarmup = "statements:warmup"
	// TaskCacheBump invalidates cached statement results after ledger changes.
	TaskCacheBump = "statements:cache_bump"
)

// StatementWarmupPayload selects which owners get warmed. An empty OwnerIDs
// slice warms every owner with posted entries.
type StatementWarmupPayload struct {
	OwnerIDs []int64 `json:"ownerIds,omitempty"`
}

// NewStatementWarmupTask constructs an Asynq task for statement warmup.
func NewStatementWarmupTask(payload StatementWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStatementWarmup, data), nil
}

// CacheBumpPayload carries the reason for the invalidation, for logging only.
type CacheBumpPayload struct {
	Reason string `json:"reason,omitempty"`
}

// NewCacheBumpTask constructs an Asynq task that bumps the statement cache
// version.
func NewCacheBumpTask(payload CacheBumpPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCacheBump, data), nil
}
