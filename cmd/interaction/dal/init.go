package dal

import (
	"VidHub.com/cmd/interaction/dal/db"
	"gorm.io/gorm"
)

func Init(conn *gorm.DB) {
	db.Init(conn)
}
