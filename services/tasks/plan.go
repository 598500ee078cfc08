package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"tripflow/config"
	"tripflow/models"

	"github.com/hibiken/asynq"
)

const TypePlanRun = "planner:run"

// NewPlanTask builds the asynq task for one planner run.
func NewPlanTask(payload models.PlanTaskPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePlanRun, b), nil
}

// AsynqEnqueuer implements planner.TaskEnqueuer on the Redis-backed
// queue.
type AsynqEnqueuer struct {
	client *asynq.Client
}

func NewAsynqEnqueuer() *AsynqEnqueuer {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisJobQueueDB,
	})
	return &AsynqEnqueuer{client: client}
}

func (e *AsynqEnqueuer) EnqueuePlan(ctx context.Context, payload models.PlanTaskPayload) error {
	task, err := NewPlanTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build plan task: %w", err)
	}
	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue plan task: %w", err)
	}
	return nil
}

// Close releases the queue client.
func (e *AsynqEnqueuer) Close() error {
	return e.client.Close()
}
