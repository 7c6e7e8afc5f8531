package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// snapshotRetention matches the widget's snapshot freshness window, so
// stale entries age out of redis on their own. Freshness is still
// validated on load; the expiry is storage hygiene, not the contract.
const snapshotRetention = 7 * 24 * time.Hour

// Redis keeps snapshot slots in a redis instance, for deployments where
// widget state should survive process restarts across replicas.
type Redis struct {
	client *redis.Client
}

// NewRedis connects a redis-backed store and verifies the connection.
func NewRedis(ctx context.Context, addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Redis{client: client}, nil
}

func (s *Redis) Write(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, snapshotRetention).Err()
}

func (s *Redis) Read(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Redis) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Close releases the underlying client.
func (s *Redis) Close() error {
	return s.client.Close()
}
