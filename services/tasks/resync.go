package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"slotwise/models"
)

// TypeResyncSummary is the queued retry of a failed availability-summary
// resync. The resync is idempotent, so retries always converge.
const TypeResyncSummary = "summary:resync"

// NewResyncTask builds the queued form of a deferred resync. The first
// attempt is delayed slightly so a transient store outage has a chance to
// clear.
func NewResyncTask(payload models.ResyncPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeResyncSummary, b)
	opts := []asynq.Option{
		asynq.ProcessIn(30 * time.Second),
		asynq.MaxRetry(5),
	}
	return task, opts, nil
}
