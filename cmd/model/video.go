package model

import "time"

// Video 的 views/likes/dislikes 是互动记录的反范式计数
// 只能通过 interaction 的事务接口修改
type Video struct {
	VideoId      int64     `gorm:"column:video_id;primaryKey;autoIncrement:false" json:"video_id,string"`
	UserId       int64     `gorm:"column:user_id;not null;index:idx_video_user" json:"user_id"`
	Title        string    `gorm:"column:title;size:255;not null" json:"title"`
	Description  string    `gorm:"column:description;type:text" json:"description"`
	VideoUrl     string    `gorm:"column:video_url;size:512;not null" json:"video_url"`
	ThumbnailUrl string    `gorm:"column:thumbnail_url;size:512" json:"thumbnail_url"`
	Views        int64     `gorm:"column:views;not null;default:0" json:"views"`
	Likes        int64     `gorm:"column:likes;not null;default:0" json:"likes"`
	Dislikes     int64     `gorm:"column:dislikes;not null;default:0" json:"dislikes"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime;index:idx_video_created" json:"created_at"`

	User *User `gorm:"foreignKey:UserId;references:UserId" json:"user,omitempty"`

	// 请求者自己的状态, 只在携带令牌读取详情时填充
	Reaction string `gorm:"-" json:"reaction,omitempty"`
	Viewed   bool   `gorm:"-" json:"viewed,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}

// DashboardStats 创作者面板
type DashboardStats struct {
	TotalVideos int64    `json:"totalVideos"`
	TotalViews  int64    `json:"totalViews"`
	TotalLikes  int64    `json:"totalLikes"`
	Subscribers int64    `json:"subscribers"`
	Videos      []*Video `json:"videos"`
}
