// Package databasetest 为测试提供迁移好的内存 sqlite 数据库
package databasetest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"VidHub.com/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq int64

// Open 每次调用返回一个独立的库, 单连接保证事务串行
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	name := fmt.Sprintf("file:vidhub_%d?mode=memory&cache=shared&_busy_timeout=5000", atomic.AddInt64(&seq, 1))
	cfg := database.GormConfig()
	cfg.Logger = logger.Default.LogMode(logger.Silent)
	db, err := gorm.Open(sqlite.Open(name), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}
