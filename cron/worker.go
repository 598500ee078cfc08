package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"tripflow/config"
	"tripflow/models"
	"tripflow/services/planner"
	"tripflow/services/tasks"

	"github.com/hibiken/asynq"
)

// InitPlanWorker runs the async planner worker in background.
func InitPlanWorker(plannerSvc planner.PlannerService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisJobQueueDB,
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
	mux.HandleFunc(tasks.TypePlanRun, handlePlanTask(plannerSvc))

	// Start async worker with retry logic
	go func() {
		log.Println("[PlanWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[PlanWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[PlanWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handlePlanTask(plannerSvc planner.PlannerService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PlanTaskPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[PlanWorker] Invalid payload: %v", err)
			return err
		}

		if err := plannerSvc.Run(ctx, p); err != nil {
			log.Printf("[PlanWorker] Job %s failed: %v", p.JobID, err)
			// The job record is already marked failed; do not retry.
			return nil
		}
		return nil
	}
}
