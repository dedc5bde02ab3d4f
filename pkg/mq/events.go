package mq

import (
	"time"

	"github.com/google/uuid"
)

// 事件类型, 只有会给频道主产生通知的互动才会投递
const (
	EventTypeVideoLike   = "video_like"
	EventTypeSubscribe   = "subscribe"
	EventTypeUnsubscribe = "unsubscribe"
)

// EngagementEvent 互动事件, 由 message 服务消费后写入通知表
type EngagementEvent struct {
	EventID   string `json:"event_id"`   // 事件ID, 消费端据此去重
	EventType string `json:"event_type"` // video_like / subscribe / unsubscribe
	UserID    int64  `json:"user_id"`    // 操作用户
	OwnerID   int64  `json:"owner_id"`   // 被通知的频道主
	VideoID   int64  `json:"video_id"`   // 视频ID
	Timestamp int64  `json:"timestamp"`  // 时间戳
}

func NewEngagementEvent(eventType string, userID, ownerID, videoID int64) *EngagementEvent {
	return &EngagementEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		UserID:    userID,
		OwnerID:   ownerID,
		VideoID:   videoID,
		Timestamp: time.Now().Unix(),
	}
}

// 常量定义
const (
	// 交换机名称
	EngagementEventExchange = "engagement_events"

	// 队列名称
	NotificationEventQueue = "notification_event_queue"
)
