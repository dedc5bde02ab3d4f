package model

import "time"

// User 账号同时也是频道, 其它用户订阅的对象
type User struct {
	UserId      int64     `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Name        string    `gorm:"column:name;size:64;not null" json:"name"`
	Email       string    `gorm:"column:email;size:128;not null;uniqueIndex:uk_user_email" json:"email"`
	Password    string    `gorm:"column:password;size:128;not null" json:"-"` // 密码哈希, 不在JSON中序列化
	Subscribers int64     `gorm:"column:subscribers;not null;default:0" json:"subscribers"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Channel 对外展示的频道信息
type Channel struct {
	UserId      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subscribers int64     `json:"subscribers"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) ToChannel() *Channel {
	return &Channel{
		UserId:      u.UserId,
		Name:        u.Name,
		Email:       u.Email,
		Subscribers: u.Subscribers,
		CreatedAt:   u.CreatedAt,
	}
}
