package mq

import "context"

// MessageProducer 消息生产者接口
type MessageProducer interface {
	PublishEngagementEvent(ctx context.Context, event *EngagementEvent) error
}

// EngagementEventHandler 消费者回调, 返回错误时消息重新入队
type EngagementEventHandler interface {
	HandleEngagementEvent(ctx context.Context, event *EngagementEvent) error
}

// 确保Producer实现MessageProducer接口
var _ MessageProducer = (*Producer)(nil)
