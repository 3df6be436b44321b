package cache

import (
	"context"
	"fmt"

	"fieldservice/internal/infrastructure/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to cfg.URL and pings it.
// Returns nil when no URL is configured (cache disabled).
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}
