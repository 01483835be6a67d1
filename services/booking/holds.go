package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chequered/models"
	"chequered/utils"

	"github.com/go-redis/redis/v8"
)

// HoldStore keeps pending holds until they are confirmed, released or expire.
type HoldStore interface {
	Save(ctx context.Context, hold models.Hold, ttl time.Duration) error
	// Get returns nil without error when the hold does not exist.
	Get(ctx context.Context, holdID string) (*models.Hold, error)
	// Claim atomically removes and returns the hold; only one caller can win it.
	Claim(ctx context.Context, holdID string) (*models.Hold, error)
}

// HoldExpiryScheduler arranges for a hold to be released once it lapses.
type HoldExpiryScheduler interface {
	ScheduleHoldExpiry(ctx context.Context, hold models.Hold) error
}

// RedisHoldStore stores holds as JSON under HoldKeyPrefix.
type RedisHoldStore struct {
	Client *redis.Client
}

func NewRedisHoldStore(client *redis.Client) *RedisHoldStore {
	return &RedisHoldStore{Client: client}
}

func (s *RedisHoldStore) Save(ctx context.Context, hold models.Hold, ttl time.Duration) error {
	data, err := json.Marshal(hold)
	if err != nil {
		return fmt.Errorf("failed to marshal hold: %w", err)
	}
	if err := s.Client.Set(ctx, utils.HoldKeyPrefix+hold.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save hold: %w", err)
	}
	return nil
}

func (s *RedisHoldStore) Get(ctx context.Context, holdID string) (*models.Hold, error) {
	data, err := s.Client.Get(ctx, utils.HoldKeyPrefix+holdID).Result()
	return decodeHold(data, err)
}

func (s *RedisHoldStore) Claim(ctx context.Context, holdID string) (*models.Hold, error) {
	data, err := s.Client.GetDel(ctx, utils.HoldKeyPrefix+holdID).Result()
	return decodeHold(data, err)
}

func decodeHold(data string, err error) (*models.Hold, error) {
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read hold: %w", err)
	}
	var hold models.Hold
	if err := json.Unmarshal([]byte(data), &hold); err != nil {
		return nil, fmt.Errorf("failed to parse hold: %w", err)
	}
	return &hold, nil
}
