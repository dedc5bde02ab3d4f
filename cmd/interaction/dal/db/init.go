package db

import (
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init 互动相关表共用 api 进程打开的连接
func Init(conn *gorm.DB) {
	DB = conn
}
