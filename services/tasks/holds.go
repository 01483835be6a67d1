package tasks

import (
	"chequered/models"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeHoldExpire = "hold:expire"

// NewHoldExpiryTask builds the task that releases a hold once it lapses.
func NewHoldExpiryTask(payload models.HoldExpiryPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeHoldExpire, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("hold-expire:" + payload.HoldID),
		asynq.MaxRetry(5),
	}

	return task, opts, nil
}

// Enqueuer is the part of *asynq.Client used for scheduling.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqHoldScheduler schedules hold expiry on the asynq queue.
type AsynqHoldScheduler struct {
	Client Enqueuer
}

func NewAsynqHoldScheduler(client Enqueuer) *AsynqHoldScheduler {
	return &AsynqHoldScheduler{Client: client}
}

func (s *AsynqHoldScheduler) ScheduleHoldExpiry(ctx context.Context, hold models.Hold) error {
	task, opts, err := NewHoldExpiryTask(models.HoldExpiryPayload{HoldID: hold.ID, SlotID: hold.SlotID}, hold.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to build hold expiry task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue hold expiry for %s: %w", hold.ID, err)
	}
	return nil
}
