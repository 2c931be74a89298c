package middleware

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"lunor.shop/app/internal/shared/apperr"
)

const (
	HeaderRateLimit     = "X-RateLimit-Limit"
	HeaderRateRemaining = "X-RateLimit-Remaining"
	HeaderRateReset     = "X-RateLimit-Reset"
)

type RateLimitCfg struct {
	Client *redis.Client
	Limit  int
	Window time.Duration
	Prefix string
	Logger *slog.Logger
}

// RateLimit counts requests per client IP, method and route in fixed
// windows stored in Redis. When Redis is unreachable the request is let
// through and the failure is logged.
func RateLimit(cfg RateLimitCfg) gin.HandlerFunc {
	if cfg.Prefix == "" {
		cfg.Prefix = "rl"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return func(c *gin.Context) {
		key := cfg.Prefix + ":" + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()

		count, ttl, err := hit(c.Request.Context(), cfg.Client, key, cfg.Window)
		if err != nil {
			cfg.Logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "rate_limit_unavailable",
				slog.String("request_id", GetRequestID(c)),
				slog.Any("err", err),
			)
			c.Next()
			return
		}

		remaining := max(cfg.Limit-int(count), 0)
		c.Header(HeaderRateLimit, strconv.Itoa(cfg.Limit))
		c.Header(HeaderRateRemaining, strconv.Itoa(remaining))
		c.Header(HeaderRateReset, strconv.Itoa(int(ttl.Round(time.Second).Seconds())))

		if int(count) > cfg.Limit {
			c.Header("Retry-After", strconv.Itoa(max(int(ttl.Seconds()), 1)))
			Fail(c, apperr.TooManyRequestsErr("Too many requests. Please slow down."))
			return
		}
		c.Next()
	}
}

// hit increments key and starts its window on the first request. A key
// left without an expiry (e.g. the PEXPIRE failed) gets one on the next hit.
func hit(ctx context.Context, rdb *redis.Client, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	ttl, err := rdb.PTTL(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	if count == 1 || ttl < 0 {
		if err := rdb.PExpire(ctx, key, window).Err(); err != nil {
			return 0, 0, err
		}
		ttl = window
	}
	return count, ttl, nil
}
