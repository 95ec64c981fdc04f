package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"slotwise/config"
	"slotwise/models"
	"slotwise/services/schedule"
	"slotwise/services/tasks"
)

// InitResyncWorker runs the async worker in background. It consumes deferred
// availability-summary resyncs queued when an inline resync failed; the
// resync is idempotent, so every retry converges toward the same summary.
func InitResyncWorker(sync schedule.SummarySyncer) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeResyncSummary, handleResyncTask(sync))

	go func() {
		log.Println("[ResyncWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ResyncWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ResyncWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleResyncTask(sync schedule.SummarySyncer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ResyncPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ResyncWorker] invalid payload: %v", err)
			return err
		}
		if err := sync.Resync(ctx, p.ProviderID, p.Dates); err != nil {
			// Returning the error lets asynq retry with backoff.
			log.Printf("[ResyncWorker] resync for %s failed: %v", p.ProviderID, err)
			return err
		}
		return nil
	}
}

// NewQueueClient builds the asynq client used to enqueue deferred resyncs.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
}
