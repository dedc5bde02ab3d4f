package db

import (
	"context"

	"VidHub.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm/clause"
)

// InsertNotification 以 event_id 去重, 消息重投不会产生重复通知
func InsertNotification(ctx context.Context, n *model.Notification) (bool, error) {
	res := DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(n)
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "InsertNotification failed,event_id: %s", n.EventId)
	}
	return res.RowsAffected > 0, nil
}

// ListNotifications 最新的在前
func ListNotifications(ctx context.Context, userId int64, limit int) ([]*model.Notification, error) {
	list := make([]*model.Notification, 0)
	err := DB.WithContext(ctx).Where("user_id = ?", userId).
		Order("created_at DESC").Order("notification_id DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, errors.Wrapf(err, "ListNotifications failed,user_id: %d", userId)
	}
	return list, nil
}

func GetUserName(ctx context.Context, userId int64) (string, error) {
	user := &model.User{}
	if err := DB.WithContext(ctx).Select("user_id", "name").Where("user_id = ?", userId).Take(user).Error; err != nil {
		return "", err
	}
	return user.Name, nil
}
