package redis

import (
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/go-redis/redis"
)

var redisDBVideoInfo *redis.Client

// Load 连接失败时只记录日志, 排行退化为数据库查询
func Load() {
	redisDBVideoInfo = redis.NewClient(&redis.Options{
		Addr:     VideoInfo.Addr,
		Password: VideoInfo.Password,
		DB:       VideoInfo.DB,
	})

	if _, err := redisDBVideoInfo.Ping().Result(); err != nil {
		hlog.Info("redisDBVideoInfo", err)
	}
}

func Close() {
	if redisDBVideoInfo != nil {
		redisDBVideoInfo.Close()
	}
}
