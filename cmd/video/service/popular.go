package service

import (
	"context"

	"VidHub.com/cmd/model"
	"VidHub.com/cmd/video/dal/db"
	"VidHub.com/cmd/video/infras/redis"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type PopularVideoService struct {
	ctx context.Context
}

func NewPopularVideoService(ctx context.Context) *PopularVideoService {
	return &PopularVideoService{ctx: ctx}
}

// Popular 优先使用 Redis 排行, 不可用或为空时回退到数据库
func (service *PopularVideoService) Popular(limit int) ([]*model.Video, error) {
	limit = normalizeLimit(limit)
	ids, err := redis.TopVideoIds(limit)
	if err != nil || len(ids) == 0 {
		if err != nil {
			hlog.CtxDebugf(service.ctx, "visit rank unavailable, fallback to db: %v", err)
		}
		return db.TopVideos(service.ctx, limit)
	}
	return db.GetVideosByIds(service.ctx, ids)
}

// RebuildRank 启动时用数据库的观看数重建排行
func RebuildRank(ctx context.Context) {
	counts, err := db.AllViewCounts(ctx)
	if err != nil {
		hlog.CtxErrorf(ctx, "load view counts failed: %v", err)
		return
	}
	if err := redis.RebuildVisitRank(counts); err != nil {
		hlog.CtxWarnf(ctx, "rebuild visit rank failed: %v", err)
		return
	}
	hlog.CtxInfof(ctx, "visit rank rebuilt with %d videos", len(counts))
}
