package mq

import (
	"context"
	"encoding/json"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewConsumer(rabbitmqURL string) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to RabbitMQ")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "failed to open a channel")
	}

	// 设置QoS，限制未确认消息数量
	err = ch.Qos(
		10,    // prefetch count
		0,     // prefetch size
		false, // global
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, errors.Wrap(err, "failed to set QoS")
	}

	if err := setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, errors.Wrap(err, "failed to setup topology")
	}

	return &Consumer{
		conn:    conn,
		channel: ch,
	}, nil
}

// ConsumeEngagementEvents 在后台 goroutine 中消费, ctx 结束后退出
func (c *Consumer) ConsumeEngagementEvents(ctx context.Context, handler EngagementEventHandler) error {
	msgs, err := c.channel.Consume(
		NotificationEventQueue,
		"",    // consumer
		false, // auto-ack (设置为false，手动确认)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return errors.Wrap(err, "failed to register a consumer")
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				hlog.Info("Engagement event consumer context cancelled")
				return
			case d, ok := <-msgs:
				if !ok {
					hlog.Info("Engagement event consumer channel closed")
					return
				}
				Dispatch(ctx, d.Body, handler, d)
			}
		}
	}()

	return nil
}

// Acknowledger 便于在测试中替换 amqp091.Delivery
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// Dispatch 解析失败的消息直接丢弃, 处理失败的重新入队
func Dispatch(ctx context.Context, body []byte, handler EngagementEventHandler, ack Acknowledger) {
	var event EngagementEvent
	if err := json.Unmarshal(body, &event); err != nil {
		hlog.Errorf("Failed to unmarshal engagement event: %v", err)
		ack.Nack(false, false) // 拒绝消息，不重新入队
		return
	}

	if err := handler.HandleEngagementEvent(ctx, &event); err != nil {
		hlog.Errorf("Failed to handle engagement event: %v", err)
		ack.Nack(false, true) // 拒绝消息，重新入队
		return
	}

	ack.Ack(false) // 确认消息
	hlog.CtxInfof(ctx, "Successfully processed engagement event: %+v", event)
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
