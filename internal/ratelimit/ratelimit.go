package ratelimit

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "rl:"

// RedisLimiter - счётчик с фиксированным окном в Redis.
// Окно начинается с первого попадания и живёт window.
type RedisLimiter struct {
	RedisClient *redis.Client
	Logger      *zap.SugaredLogger
}

func NewRedisLimiter(redisClient *redis.Client, logger *zap.SugaredLogger) *RedisLimiter {
	return &RedisLimiter{
		RedisClient: redisClient,
		Logger:      logger,
	}
}

// Allow - увеличивает счётчик ключа, возвращает разрешено ли действие и текущее значение
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error) {
	k := keyPrefix + key

	n, err := l.RedisClient.Incr(ctx, k).Result()
	if err != nil {
		l.Logger.Errorw("Failed to increment rate limit counter", "key", k, zap.Error(err))
		return false, 0, err
	}

	if n == 1 {
		if err = l.RedisClient.Expire(ctx, k, window).Err(); err != nil {
			l.Logger.Errorw("Failed to set rate limit window", "key", k, zap.Error(err))
			return false, n, err
		}
	}

	return n <= limit, n, nil
}
