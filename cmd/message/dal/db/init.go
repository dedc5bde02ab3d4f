package db

import (
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init init DB
func Init(conn *gorm.DB) {
	DB = conn
}
