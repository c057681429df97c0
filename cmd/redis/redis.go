package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/muhammadheryan/stock-allocation/cmd/config"
	"github.com/redis/go-redis/v9"
)

// New builds the Redis client backing the distributed order lock and verifies connectivity.
func New(cfg config.RedisConfig) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("unable to ping redis at %s: %w", addr, err)
	}

	return c, nil
}
