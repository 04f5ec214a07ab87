package config

import (
	"context"
	"time"

	"github.com/Triaksa-Space/cookie-notice/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis connects to REDIS_URL. Redis is optional: when it is not configured
// or unreachable the result is nil and options are read without a cache.
func InitRedis(ctx context.Context, cfg Config) *redis.Client {
	log := logger.Get().WithComponent("config")
	if cfg.RedisURL == "" {
		log.Info("REDIS_URL not configured, options cache disabled")
		return nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Warn("Failed to parse REDIS_URL, options cache disabled", logger.Err(err))
		return nil
	}

	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("Failed to connect to Redis, options cache disabled", logger.Err(err))
		client.Close()
		return nil
	}

	log.Info("Connected to Redis")
	RedisClient = client
	return client
}
