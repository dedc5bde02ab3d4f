package security

import (
	"context"
	"errors"
	"testing"
	"time"

	"VidHub.com/pkg/constants"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLimiter 每个 key 允许 max 次
type countingLimiter struct {
	max    int64
	counts map[string]int64
	err    error
}

func (l *countingLimiter) Allow(_ context.Context, key string) (*RateLimitResult, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.counts[key]++
	return newResult(l.counts[key], l.max, time.Now().Add(time.Minute), time.Minute, SlidingWindow), nil
}

func newEngine(limiter Limiter) *route.Engine {
	engine := route.NewEngine(config.NewOptions([]config.Option{}))
	engine.POST("/act", func(ctx context.Context, c *app.RequestContext) {
		c.Set(constants.IdentityKey, c.Query("uid"))
		c.Next(ctx)
	}, RateLimitMiddleware(limiter, "react"), func(ctx context.Context, c *app.RequestContext) {
		c.String(consts.StatusOK, "ok")
	})
	return engine
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := &countingLimiter{max: 2, counts: map[string]int64{}}
	engine := newEngine(limiter)

	for i := 0; i < 2; i++ {
		w := ut.PerformRequest(engine, consts.MethodPost, "/act?uid=1", nil)
		assert.Equal(t, consts.StatusOK, w.Result().StatusCode())
	}
	w := ut.PerformRequest(engine, consts.MethodPost, "/act?uid=1", nil)
	assert.Equal(t, consts.StatusTooManyRequests, w.Result().StatusCode())
	assert.NotEmpty(t, string(w.Result().Header.Peek("Retry-After")))

	// 其它用户不受影响
	w = ut.PerformRequest(engine, consts.MethodPost, "/act?uid=2", nil)
	assert.Equal(t, consts.StatusOK, w.Result().StatusCode())
	assert.Equal(t, int64(1), limiter.counts["react:user:2"])
}

func TestRateLimitFailOpen(t *testing.T) {
	engine := newEngine(&countingLimiter{err: errors.New("redis down")})
	w := ut.PerformRequest(engine, consts.MethodPost, "/act?uid=1", nil)
	assert.Equal(t, consts.StatusOK, w.Result().StatusCode())

	engine = newEngine(nil)
	w = ut.PerformRequest(engine, consts.MethodPost, "/act", nil)
	assert.Equal(t, consts.StatusOK, w.Result().StatusCode())
}

func TestCircuitBreaker(t *testing.T) {
	cb := NewCircuitBreaker("mq", 2, 20*time.Millisecond)
	var transitions []string
	cb.OnStateChange(func(_ string, from, to CircuitState) {
		transitions = append(transitions, from.String()+"->"+to.String())
	})
	boom := errors.New("boom")

	assert.Equal(t, boom, cb.Execute(func() error { return boom }))
	assert.Equal(t, StateClosed, cb.GetState())
	assert.Equal(t, boom, cb.Execute(func() error { return boom }))
	assert.Equal(t, StateOpen, cb.GetState())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)

	time.Sleep(30 * time.Millisecond)
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.GetState())
	assert.Equal(t, int64(0), cb.GetFailures())
	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}
