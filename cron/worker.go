package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chequered/config"
	"chequered/models"
	"chequered/services/tasks"
	"chequered/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// HoldExpirer releases lapsed holds. The booking service satisfies it.
type HoldExpirer interface {
	ExpireHold(ctx context.Context, holdID string) error
}

// QueueRedisOpt is the asynq connection shared by the worker and the task client.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewHoldMux routes hold tasks to expirer.
func NewHoldMux(expirer HoldExpirer) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeHoldExpire, handleHoldExpiry(expirer))
	return mux
}

// InitHoldWorker runs the async worker in background and returns the server so it can be shut down.
func InitHoldWorker(expirer HoldExpirer) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	mux := NewHoldMux(expirer)

	go func() {
		logger.Info("starting hold expiry worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				break
			}
			logger.Error("hold expiry worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("hold expiry worker gave up")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

func handleHoldExpiry(expirer HoldExpirer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.HoldExpiryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			// a malformed payload will never succeed
			return fmt.Errorf("invalid hold expiry payload: %v: %w", err, asynq.SkipRetry)
		}
		if err := expirer.ExpireHold(ctx, p.HoldID); err != nil {
			utils.GetLogger().Error("failed to expire hold",
				zap.String("holdId", p.HoldID), zap.String("slotId", p.SlotID), zap.Error(err))
			return err
		}
		return nil
	}
}
