package rpc

import (
	"context"
	"time"

	interactiondal "VidHub.com/cmd/interaction/dal"
	messagedb "VidHub.com/cmd/message/dal/db"
	userdb "VidHub.com/cmd/user/dal/db"
	videodb "VidHub.com/cmd/video/dal/db"
	"VidHub.com/pkg/broadcast"
	"VidHub.com/pkg/mq"
	"VidHub.com/pkg/oss"
	"VidHub.com/pkg/security"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm"
)

// 各服务在 API 进程内直接调用, 这里保存它们共享的依赖
var (
	Bus      broadcast.Bus
	Producer mq.MessageProducer
	Store    oss.MediaStore
)

type Deps struct {
	Bus      broadcast.Bus
	Producer mq.MessageProducer
	Store    oss.MediaStore
}

func InitRPC(conn *gorm.DB, deps Deps) {
	userdb.Init(conn)
	videodb.Init(conn)
	interactiondal.Init(conn)
	messagedb.Init(conn)

	Bus = deps.Bus
	if Bus == nil {
		Bus = broadcast.NewLocalBus()
	}
	Producer = nil
	if deps.Producer != nil {
		breaker := security.NewCircuitBreaker("rabbitmq", 5, 30*time.Second)
		breaker.OnStateChange(func(name string, from, to security.CircuitState) {
			hlog.Warnf("circuit breaker %s: %s -> %s", name, from, to)
		})
		Producer = &guardedProducer{producer: deps.Producer, breaker: breaker}
	}
	Store = deps.Store
}

// guardedProducer RabbitMQ 连续失败后暂停投递
type guardedProducer struct {
	producer mq.MessageProducer
	breaker  *security.CircuitBreaker
}

func (p *guardedProducer) PublishEngagementEvent(ctx context.Context, event *mq.EngagementEvent) error {
	return p.breaker.Execute(func() error {
		return p.producer.PublishEngagementEvent(ctx, event)
	})
}
