package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/predictions"
)

// KeyPrefix namespaces prediction entries.
const KeyPrefix = "nhl:predictions:"

const (
	defaultTTL  = 10 * time.Minute
	pingTimeout = 5 * time.Second
)

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Close() error
}

// RedisCache keeps JSON-encoded days in Redis with a TTL.
type RedisCache struct {
	client redisClient
	ttl    time.Duration
}

// NewRedis connects to redisURL and verifies the connection.
func NewRedis(ctx context.Context, redisURL string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return newRedisCache(client, ttl), nil
}

func newRedisCache(client redisClient, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Key returns the Redis key for date.
func Key(date string) string {
	return KeyPrefix + date
}

func (c *RedisCache) Get(ctx context.Context, date string) (predictions.Day, bool, error) {
	raw, err := c.client.Get(ctx, Key(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return predictions.Day{}, false, nil
	}
	if err != nil {
		return predictions.Day{}, false, err
	}

	var day predictions.Day
	if err := json.Unmarshal(raw, &day); err != nil {
		return predictions.Day{}, false, fmt.Errorf("decode cached day: %w", err)
	}
	if day.Games == nil {
		day.Games = []predictions.Result{}
	}
	return day, true, nil
}

func (c *RedisCache) Set(ctx context.Context, date string, day predictions.Day) error {
	raw, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("encode day: %w", err)
	}
	return c.client.Set(ctx, Key(date), raw, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
