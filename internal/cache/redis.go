// Package cache provides the cross-instance create lock. The database
// transaction remains the authority over the booking row; the lock only
// narrows the window in which two processes work on the same key.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(cfg Config) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: rdb}, nil
}

// AcquireCreateLock takes a best-effort lock on the storage key for the
// duration of a create call. Returns false when another process holds it.
func (c *RedisCache) AcquireCreateLock(ctx context.Context, storageKey string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, createLockKey(storageKey), "locked", ttl).Result()
}

// ReleaseCreateLock drops the lock early; the TTL covers crashed holders.
func (c *RedisCache) ReleaseCreateLock(ctx context.Context, storageKey string) error {
	return c.client.Del(ctx, createLockKey(storageKey)).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func createLockKey(storageKey string) string {
	return fmt.Sprintf("lock:booking:%s", storageKey)
}
