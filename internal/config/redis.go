package config

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ConnectRedis parses redisURL and pings the server, retrying like ConnectDB
func ConnectRedis(ctx context.Context, redisURL string, logger *zap.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	for i := 0; i < maxConnectRetries; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			logger.Info("connected to Redis", zap.String("addr", opt.Addr))
			return client, nil
		}
		logger.Warn("failed to connect to Redis, retrying",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxConnectRetries),
			zap.Error(err))

		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, ctx.Err()
		case <-time.After(connectRetryInterval):
		}
	}
	_ = client.Close()
	return nil, fmt.Errorf("unable to connect to Redis after %d attempts: %w", maxConnectRetries, err)
}
