package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"swasthsetu/internal/config"
)

// NewRedisClient returns nil, nil when REDIS_ADDR is empty; callers fall back
// to in-process stores.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
