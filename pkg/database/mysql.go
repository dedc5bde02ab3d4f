package database

import (
	"context"
	"time"

	"VidHub.com/cmd/model"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	gormopentracing "gorm.io/plugin/opentracing"
)

// PoolConfig 连接池配置
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

var DefaultPool = PoolConfig{
	MaxOpenConns:    64,
	MaxIdleConns:    16,
	ConnMaxLifetime: time.Hour,
}

// GormConfig 所有连接共用的配置, 唯一键冲突会被翻译成 gorm.ErrDuplicatedKey
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	}
}

// Open 打开 MySQL 连接并挂载 opentracing 插件
func Open(dsn string, pool PoolConfig) (*gorm.DB, error) {
	cfg := GormConfig()
	cfg.PrepareStmt = true
	db, err := gorm.Open(mysql.Open(dsn), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}
	if err = db.Use(gormopentracing.New()); err != nil {
		return nil, errors.Wrap(err, "use opentracing plugin")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 设置连接池参数
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)

	return db, nil
}

// Migrate 建表以及唯一索引, 唯一索引是互动幂等的最后一道防线
func Migrate(db *gorm.DB) error {
	hlog.Info("Starting tables migration...")
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		hlog.Errorf("Failed to migrate tables: %v", err)
		return errors.Wrap(err, "auto migrate")
	}
	hlog.Info("Tables migration completed successfully")
	return nil
}

// HealthCheck 健康检查
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "database health check failed")
	}
	return nil
}

// Close 关闭数据库连接
func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			hlog.Errorf("Failed to close database: %v", err)
		}
	}
}
