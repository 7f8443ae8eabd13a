package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	appinv "github.com/pizzastock/backend/internal/application/inventory"
	"github.com/pizzastock/backend/internal/domain/inventory"
	"github.com/pizzastock/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const statisticsKeyPrefix = "stats:movements:"

// RedisStatisticsCache caches computed movement statistics in Redis so the
// dashboard polling does not hit the ledger aggregation on every request.
type RedisStatisticsCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStatisticsCache connects to Redis and returns a statistics cache
func NewRedisStatisticsCache(cfg config.RedisConfig) (*RedisStatisticsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStatisticsCache{
		client:    client,
		keyPrefix: statisticsKeyPrefix,
	}, nil
}

// NewRedisStatisticsCacheWithClient wraps an existing Redis client.
// Useful for tests and for sharing a client across components.
func NewRedisStatisticsCacheWithClient(client *redis.Client, keyPrefix string) *RedisStatisticsCache {
	if keyPrefix == "" {
		keyPrefix = statisticsKeyPrefix
	}
	return &RedisStatisticsCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached statistics for the key, or (nil, nil) on a miss
func (c *RedisStatisticsCache) Get(ctx context.Context, key string) ([]inventory.MovementStatistic, error) {
	payload, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read statistics cache: %w", err)
	}

	var stats []inventory.MovementStatistic
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode cached statistics: %w", err)
	}
	return stats, nil
}

// Set stores statistics under the key with a TTL
func (c *RedisStatisticsCache) Set(ctx context.Context, key string, stats []inventory.MovementStatistic, ttl time.Duration) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode statistics: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write statistics cache: %w", err)
	}
	return nil
}

// Invalidate drops every cached statistics entry. Called after any ledger
// write so stale aggregates never outlive a mutation.
func (c *RedisStatisticsCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate statistics cache: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan statistics cache keys: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisStatisticsCache) Close() error {
	return c.client.Close()
}

// Ensure RedisStatisticsCache implements StatisticsCache
var _ appinv.StatisticsCache = (*RedisStatisticsCache)(nil)
