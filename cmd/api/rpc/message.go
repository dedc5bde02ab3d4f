package rpc

import (
	"context"

	"VidHub.com/cmd/message/service"
	"VidHub.com/cmd/model"
)

func ListNotifications(ctx context.Context, userId int64, limit int) ([]*model.Notification, error) {
	return service.NewNotificationService(ctx).ListNotifications(userId, limit)
}
