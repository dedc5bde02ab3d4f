package model

import "time"

// Notification 由 MQ 消费者写入, 通知频道主有新的点赞或订阅
type Notification struct {
	NotificationId int64     `gorm:"column:notification_id;primaryKey;autoIncrement" json:"notification_id"`
	UserId         int64     `gorm:"column:user_id;not null;index:idx_notification_user" json:"user_id"`
	FromUserId     int64     `gorm:"column:from_user_id;not null" json:"from_user_id"`
	VideoId        int64     `gorm:"column:video_id" json:"video_id,string"`
	Type           string    `gorm:"column:type;size:32;not null" json:"type"`
	Content        string    `gorm:"column:content;size:255" json:"content"`
	EventId        string    `gorm:"column:event_id;size:36;uniqueIndex:uk_notification_event" json:"event_id"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Video{},
		&View{},
		&Reaction{},
		&Subscription{},
		&Notification{},
	}
}
