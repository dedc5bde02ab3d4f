// Package broadcast 按房间扇出互动事件, 只是通知信号, 不是数据源
package broadcast

import "context"

// Handler 在发布方的 goroutine 中被调用, 不能阻塞
type Handler func(topic string, payload []byte)

type Bus interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	// Subscribe 返回的函数用于取消订阅, 可重复调用
	Subscribe(topic string, handler Handler) (cancel func())
}
