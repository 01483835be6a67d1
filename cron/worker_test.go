package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"chequered/models"
	"chequered/services/tasks"

	"github.com/hibiken/asynq"
)

type recordingExpirer struct {
	expired []string
	err     error
}

func (r *recordingExpirer) ExpireHold(ctx context.Context, holdID string) error {
	r.expired = append(r.expired, holdID)
	return r.err
}

func TestHoldMuxExpiresHold(t *testing.T) {
	expirer := &recordingExpirer{}
	task, _, err := tasks.NewHoldExpiryTask(models.HoldExpiryPayload{HoldID: "h-1", SlotID: "s-1"}, time.Now())
	if err != nil {
		t.Fatalf("NewHoldExpiryTask: %v", err)
	}
	if err := NewHoldMux(expirer).ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("ProcessTask: %v", err)
	}
	if len(expirer.expired) != 1 || expirer.expired[0] != "h-1" {
		t.Fatalf("expired = %v", expirer.expired)
	}
}

func TestHoldMuxErrors(t *testing.T) {
	expirer := &recordingExpirer{err: errors.New("mongo down")}
	task, _, _ := tasks.NewHoldExpiryTask(models.HoldExpiryPayload{HoldID: "h-1"}, time.Now())
	if err := NewHoldMux(expirer).ProcessTask(context.Background(), task); err == nil {
		t.Fatal("expected the expiry error to be returned for retry")
	}

	bad := asynq.NewTask(tasks.TypeHoldExpire, []byte("{"))
	err := NewHoldMux(&recordingExpirer{}).ProcessTask(context.Background(), bad)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("err = %v, want SkipRetry", err)
	}
}
