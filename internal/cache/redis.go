package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"TrendSentinel/internal/model"
)

// RedisConfig configures the Redis report cache.
type RedisConfig struct {
	Addr     string // Redis address, e.g. "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache keeps reports as JSON strings with a TTL.
type RedisCache struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewRedisCache connects and pings the server.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info().Str("addr", cfg.Addr).Msg("redis report cache connected")
	return &RedisCache{client: client, ttl: cfg.TTL}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (*model.Report, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var report model.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, false, fmt.Errorf("decode cached report %s: %w", key, err)
	}
	return &report, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, report *model.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Close() error { return c.client.Close() }
