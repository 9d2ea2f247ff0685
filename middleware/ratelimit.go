package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"blog-platform/helper"
	"blog-platform/logging"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Limiter counts hits for key in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, remaining int, err error)
	Limit() int
}

// RedisLimiter is a fixed-window counter shared by every API instance.
type RedisLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
	prefix string
}

func NewRedisLimiter(client *redis.Client, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, max: max, window: window, prefix: "ratelimit:"}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	redisKey := l.windowKey(key, time.Now())

	pipe := l.client.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, l.max, err
	}

	count := int(incr.Val())
	remaining := l.max - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= l.max, remaining, nil
}

// windowKey names the counter for key in the window containing now. Each
// window gets its own key, so refreshing the TTL on every hit never extends
// a window.
func (l *RedisLimiter) windowKey(key string, now time.Time) string {
	return fmt.Sprintf("%s%s:%d", l.prefix, key, now.Truncate(l.window).Unix())
}

func (l *RedisLimiter) Limit() int {
	return l.max
}

// RateLimit rejects clients over their quota with 429. When the limiter
// itself fails the request is let through.
func RateLimit(limiter Limiter, httpHelper *helper.HTTPHelper, metrics *Metrics, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.WithContext(c.Request.Context()).WithError(err).Warn("rate limiter unavailable")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			if metrics != nil {
				metrics.RateLimitedTotal.Inc()
			}
			httpHelper.SendTooManyRequests(c, "Too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
