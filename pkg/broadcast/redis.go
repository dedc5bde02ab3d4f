package broadcast

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const channelPrefix = "room:"

// RedisBus 多实例部署时通过 Redis Pub/Sub 转发房间事件
// 所有实例(包括发布者自己)都从 Redis 收到消息后再在本地扇出
type RedisBus struct {
	client   *redis.Client
	local    *LocalBus
	restarts int64
}

func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{
		client: client,
		local:  NewLocalBus(),
	}
}

func (b *RedisBus) Publish(ctx context.Context, topic string, payload []byte) error {
	if err := b.client.Publish(ctx, channelPrefix+topic, payload).Err(); err != nil {
		return errors.Wrapf(err, "redis publish topic=%s", topic)
	}
	return nil
}

func (b *RedisBus) Subscribe(topic string, handler Handler) func() {
	return b.local.Subscribe(topic, handler)
}

// 订阅断开后的重连间隔, 每次失败翻倍
var (
	relayMinBackoff = 500 * time.Millisecond
	relayMaxBackoff = 30 * time.Second
)

// Run 阻塞直到 ctx 结束, 在 main 中用单独的 goroutine 启动
// 订阅失败或连接断开时按退避间隔重新订阅, 期间本实例的房间收不到事件
func (b *RedisBus) Run(ctx context.Context) error {
	backoff := relayMinBackoff
	for {
		subscribed, err := b.relay(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if subscribed {
			backoff = relayMinBackoff
		}
		atomic.AddInt64(&b.restarts, 1)
		hlog.Warnf("redis broadcast relay interrupted, retry in %s: %v", backoff, err)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
		if backoff *= 2; backoff > relayMaxBackoff {
			backoff = relayMaxBackoff
		}
	}
}

// Restarts 中继重新订阅的次数
func (b *RedisBus) Restarts() int64 {
	return atomic.LoadInt64(&b.restarts)
}

// relay 一次订阅会话, 返回值表示订阅是否曾经成功
func (b *RedisBus) relay(ctx context.Context) (bool, error) {
	ps := b.client.PSubscribe(ctx, channelPrefix+"*")
	defer ps.Close()

	if _, err := ps.Receive(ctx); err != nil {
		return false, errors.Wrap(err, "redis psubscribe")
	}
	hlog.Info("Redis broadcast relay started")

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return true, nil
		case msg, ok := <-ch:
			if !ok {
				return true, errors.New("redis pubsub channel closed")
			}
			topic := strings.TrimPrefix(msg.Channel, channelPrefix)
			_ = b.local.Publish(ctx, topic, []byte(msg.Payload))
		}
	}
}
