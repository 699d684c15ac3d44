package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis returns nil when no redis is configured or reachable; callers
// then run without the article list cache.
func NewRedis(ctx context.Context, cfg *Config, logger *slog.Logger) *redis.Client {
	var opt *redis.Options
	switch {
	case cfg.RedisURL != "":
		parsed, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Warn("failed to parse REDIS_URL, running without cache", "error", err)
			return nil
		}
		opt = parsed
	case cfg.RedisAddr != "":
		opt = &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		}
	default:
		logger.Info("redis not configured, running without cache")
		return nil
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis connection failed, running without cache", "error", err)
		client.Close()
		return nil
	}

	logger.Info("redis connected", "addr", opt.Addr)
	return client
}
