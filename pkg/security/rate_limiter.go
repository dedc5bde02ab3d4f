package security

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/redis/go-redis/v9"
)

const (
	SlidingWindow = "sliding_window"
	FixedWindow   = "fixed_window"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Algorithm   string        `json:"algorithm"`
	WindowSize  time.Duration `json:"window_size"`
	MaxRequests int64         `json:"max_requests"`
	KeyPrefix   string        `json:"key_prefix"`
}

// RateLimitResult 限流结果
type RateLimitResult struct {
	Allowed    bool          `json:"allowed"`
	Remaining  int64         `json:"remaining"`
	ResetTime  time.Time     `json:"reset_time"`
	RetryAfter time.Duration `json:"retry_after"`
	LimitType  string        `json:"limit_type"`
}

type Limiter interface {
	Allow(ctx context.Context, key string) (*RateLimitResult, error)
}

// RedisRateLimiter 多实例共享计数的限流器
type RedisRateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
}

func NewRedisRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RedisRateLimiter {
	if config.KeyPrefix == "" {
		config.KeyPrefix = "ratelimit:"
	}
	return &RedisRateLimiter{
		redis:  redisClient,
		config: config,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (*RateLimitResult, error) {
	key = l.config.KeyPrefix + key
	switch l.config.Algorithm {
	case FixedWindow:
		return l.fixedWindowLimit(ctx, key)
	default:
		return l.slidingWindowLimit(ctx, key)
	}
}

// slidingWindowLimit 滑动窗口限流
func (l *RedisRateLimiter) slidingWindowLimit(ctx context.Context, key string) (*RateLimitResult, error) {
	now := time.Now()
	windowStart := now.Add(-l.config.WindowSize)

	pipe := l.redis.TxPipeline()

	// 清理过期记录
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))

	// 添加当前请求
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	})

	// 计算当前窗口内的请求数
	countCmd := pipe.ZCard(ctx, key)

	pipe.Expire(ctx, key, l.config.WindowSize+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return newResult(countCmd.Val(), l.config.MaxRequests, now.Add(l.config.WindowSize), l.config.WindowSize, SlidingWindow), nil
}

// fixedWindowLimit 固定窗口限流
func (l *RedisRateLimiter) fixedWindowLimit(ctx context.Context, key string) (*RateLimitResult, error) {
	now := time.Now()
	window := int64(l.config.WindowSize.Seconds())
	if window <= 0 {
		window = 1
	}
	windowKey := fmt.Sprintf("%s:%d", key, now.Unix()/window)

	pipe := l.redis.TxPipeline()
	incrCmd := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, l.config.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	reset := time.Unix((now.Unix()/window+1)*window, 0)
	return newResult(incrCmd.Val(), l.config.MaxRequests, reset, time.Until(reset), FixedWindow), nil
}

func newResult(count, max int64, reset time.Time, retryAfter time.Duration, limitType string) *RateLimitResult {
	result := &RateLimitResult{
		Allowed:   count <= max,
		Remaining: max - count,
		ResetTime: reset,
		LimitType: limitType,
	}
	if result.Remaining < 0 {
		result.Remaining = 0
	}
	if !result.Allowed {
		result.RetryAfter = retryAfter
	}
	return result
}

// ClientKey 登录用户按用户限流, 匿名请求按IP
func ClientKey(c *app.RequestContext) string {
	if v, ok := c.Get(constants.IdentityKey); ok {
		if uid := utils.Transfer(v); uid > 0 {
			return "user:" + strconv.FormatInt(uid, 10)
		}
	}
	return "ip:" + c.ClientIP()
}

// RateLimitMiddleware 限流器出错时放行, 互动操作不依赖 Redis 的可用性
func RateLimitMiddleware(limiter Limiter, scope string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if limiter == nil {
			c.Next(ctx)
			return
		}
		result, err := limiter.Allow(ctx, scope+":"+ClientKey(c))
		if err != nil {
			hlog.CtxWarnf(ctx, "rate limiter unavailable: %v", err)
			c.Next(ctx)
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		if !result.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())+1))
			Err := errno.RateLimitErr
			c.AbortWithStatusJSON(errno.HTTPStatus(Err), map[string]interface{}{
				"code":    Err.ErrCode,
				"message": Err.ErrMsg,
				"data":    nil,
			})
			return
		}
		c.Next(ctx)
	}
}
