package utils

import (
	"context"
	"time"

	"guestdesk/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NewCacheClient connects the Redis client used for reference-data caching.
// Redis being down is not fatal: the caller gets a nil client and every cache
// consumer falls through to live fetches.
func NewCacheClient(cfg *config.Config, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("failed to connect to Redis, running without cache", zap.Error(err))
		return nil
	}
	return client
}
