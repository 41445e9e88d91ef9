package cache

import (
	"context"
	"fmt"
	"time"

	"foodbox-be/internal/config"

	"github.com/go-redis/redis/v8"
)

// NewClient connects to redis and verifies the connection with a ping.
func NewClient(cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return rdb, nil
}
