package service

import (
	"context"
	"fmt"

	"VidHub.com/cmd/message/dal/db"
	"VidHub.com/cmd/model"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type NotificationService struct {
	ctx context.Context
}

func NewNotificationService(ctx context.Context) *NotificationService {
	return &NotificationService{
		ctx: ctx,
	}
}

// HandleEngagementEvent 把互动事件写成频道主的通知
func (s *NotificationService) HandleEngagementEvent(ctx context.Context, event *mq.EngagementEvent) error {
	if event.OwnerID == 0 || event.OwnerID == event.UserID {
		return nil
	}

	name, err := db.GetUserName(ctx, event.UserID)
	if err != nil {
		hlog.CtxWarnf(ctx, "load user %d for notification failed: %v", event.UserID, err)
		name = fmt.Sprintf("user %d", event.UserID)
	}

	var content string
	switch event.EventType {
	case mq.EventTypeVideoLike:
		content = name + " liked your video"
	case mq.EventTypeSubscribe:
		content = name + " subscribed to your channel"
	case mq.EventTypeUnsubscribe:
		content = name + " unsubscribed from your channel"
	default:
		hlog.CtxWarnf(ctx, "skip unknown engagement event type %s", event.EventType)
		return nil
	}

	inserted, err := db.InsertNotification(ctx, &model.Notification{
		UserId:     event.OwnerID,
		FromUserId: event.UserID,
		VideoId:    event.VideoID,
		Type:       event.EventType,
		Content:    content,
		EventId:    event.EventID,
	})
	if err != nil {
		return err
	}
	if !inserted {
		hlog.CtxInfof(ctx, "duplicate engagement event %s ignored", event.EventID)
	}
	return nil
}

func (s *NotificationService) ListNotifications(userId int64, limit int) ([]*model.Notification, error) {
	if limit <= 0 || limit > constants.MaxLimit {
		limit = constants.DefaultLimit
	}
	list, err := db.ListNotifications(s.ctx, userId, limit)
	if err != nil {
		hlog.CtxErrorf(s.ctx, "list notifications failed: %v", err)
		return nil, errno.MysqlErr
	}
	return list, nil
}
