package cache

import (
	"context"
	"fmt"
	"time"

	"nba_analysis/internal/metrics"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection parameters
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RedisCache tracks which games have already been fully ingested so a
// rerun skips them without a database round trip. It is an
// optimization only: on any Redis error callers fall back to the
// database's own idempotency.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and verifies the connection
func NewRedisCache(cfg Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

func ingestedKey(gameID string) string {
	return "nba:ingested:" + gameID
}

// IsIngested reports whether gameID was marked as ingested. Errors are
// treated as a miss.
func (c *RedisCache) IsIngested(ctx context.Context, gameID string) bool {
	if c == nil {
		return false
	}
	n, err := c.client.Exists(ctx, ingestedKey(gameID)).Result()
	if err != nil || n == 0 {
		metrics.RecordCacheMiss()
		return false
	}
	metrics.RecordCacheHit()
	return true
}

// MarkIngested flags gameID as fully ingested for ttl. Best effort.
func (c *RedisCache) MarkIngested(ctx context.Context, gameID string, ttl time.Duration) {
	if c == nil {
		return
	}
	c.client.Set(ctx, ingestedKey(gameID), "1", ttl)
}

// FlushIngested removes every ingested-game marker. The markers only
// mirror the database; whenever the store is rebuilt they must go too,
// or a stale marker would hide a game the store no longer has.
func (c *RedisCache) FlushIngested(ctx context.Context) error {
	if c == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, ingestedKey("*"), 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close releases the underlying connection
func (c *RedisCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
