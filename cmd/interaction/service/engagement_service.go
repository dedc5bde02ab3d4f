package service

import (
	"context"

	"VidHub.com/pkg/broadcast"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/metrics"
	"VidHub.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ViewRanker 观看数变化后同步热门排行
type ViewRanker interface {
	UpdateVideoViews(ctx context.Context, videoId, views int64) error
}

// EngagementService 互动计数的唯一写入方
// 每次修改在一个事务内完成, 提交之后才向房间广播
type EngagementService struct {
	ctx      context.Context
	bus      broadcast.Bus
	producer mq.MessageProducer
	ranker   ViewRanker
}

type Option func(s *EngagementService)

func WithProducer(producer mq.MessageProducer) Option {
	return func(s *EngagementService) {
		s.producer = producer
	}
}

func WithRanker(ranker ViewRanker) Option {
	return func(s *EngagementService) {
		s.ranker = ranker
	}
}

func NewEngagementService(ctx context.Context, bus broadcast.Bus, opts ...Option) *EngagementService {
	s := &EngagementService{
		ctx: ctx,
		bus: bus,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// notFound 把 gorm 的记录不存在转换为业务错误, 其它错误原样返回
func notFound(err error, target errno.ErrNo) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

func observe(op string, applied bool, err error) {
	switch {
	case err != nil:
		metrics.EngagementMutations.WithLabelValues(op, "error").Inc()
	case applied:
		metrics.EngagementMutations.WithLabelValues(op, "applied").Inc()
	default:
		metrics.EngagementMutations.WithLabelValues(op, "noop").Inc()
		metrics.EngagementConflicts.WithLabelValues(op).Inc()
	}
}

// publish 广播失败只记录日志, 不影响已经提交的修改
func (s *EngagementService) publish(event string, videoId int64, data interface{}) {
	if s.bus == nil {
		return
	}
	if err := broadcast.PublishEvent(s.ctx, s.bus, event, videoId, data); err != nil {
		metrics.BroadcastPublished.WithLabelValues(event, "error").Inc()
		hlog.CtxErrorf(s.ctx, "broadcast %s video=%d failed: %v", event, videoId, err)
		return
	}
	metrics.BroadcastPublished.WithLabelValues(event, "ok").Inc()
}

func (s *EngagementService) notify(event *mq.EngagementEvent) {
	if s.producer == nil || event.UserID == event.OwnerID {
		return
	}
	if err := s.producer.PublishEngagementEvent(s.ctx, event); err != nil {
		hlog.CtxErrorf(s.ctx, "publish engagement event %s failed: %v", event.EventType, err)
	}
}
