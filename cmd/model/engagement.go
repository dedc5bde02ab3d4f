package model

import "time"

// View 每个 (user, video) 只记一次观看, 只插入不更新
type View struct {
	ViewId    int64     `gorm:"column:view_id;primaryKey;autoIncrement" json:"view_id"`
	UserId    int64     `gorm:"column:user_id;not null;uniqueIndex:uk_view_user_video,priority:1" json:"user_id"`
	VideoId   int64     `gorm:"column:video_id;not null;uniqueIndex:uk_view_user_video,priority:2;index:idx_view_video" json:"video_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (View) TableName() string {
	return "views"
}

// Reaction 每个 (user, video) 至多一条, 切换类型时原地更新
type Reaction struct {
	ReactionId int64     `gorm:"column:reaction_id;primaryKey;autoIncrement" json:"reaction_id"`
	UserId     int64     `gorm:"column:user_id;not null;uniqueIndex:uk_reaction_user_video,priority:1" json:"user_id"`
	VideoId    int64     `gorm:"column:video_id;not null;uniqueIndex:uk_reaction_user_video,priority:2;index:idx_reaction_video" json:"video_id"`
	Type       string    `gorm:"column:type;size:16;not null" json:"type"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Reaction) TableName() string {
	return "reactions"
}

// Subscription 存在即已订阅, subscriber 不能等于 channel
type Subscription struct {
	SubscriptionId int64     `gorm:"column:subscription_id;primaryKey;autoIncrement" json:"subscription_id"`
	SubscriberId   int64     `gorm:"column:subscriber_id;not null;uniqueIndex:uk_subscriber_channel,priority:1" json:"subscriber_id"`
	ChannelId      int64     `gorm:"column:channel_id;not null;uniqueIndex:uk_subscriber_channel,priority:2;index:idx_subscription_channel" json:"channel_id"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// ReactionCounts 点赞/点踩的绝对值快照
type ReactionCounts struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
	// 操作者当前的反应, 空串表示没有
	Reaction string `json:"reaction"`
}

type SubscriptionState struct {
	Subscribers  int64 `json:"subscribers"`
	IsSubscribed bool  `json:"isSubscribed"`
	ChannelId    int64 `json:"channelId"`
}
