package service

import (
	"context"

	"VidHub.com/cmd/video/dal/db"
	"VidHub.com/cmd/video/infras/redis"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/oss"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type DeleteVideoService struct {
	ctx   context.Context
	store oss.MediaStore
}

func NewDeleteVideoService(ctx context.Context, store oss.MediaStore) *DeleteVideoService {
	return &DeleteVideoService{ctx: ctx, store: store}
}

// DeleteVideo 只有作者可以删除, 同时删除观看和反应记录
func (service *DeleteVideoService) DeleteVideo(userId, videoId int64) error {
	video, err := db.GetVideo(service.ctx, videoId)
	if err != nil {
		return notFound(err, errno.VideoNotFoundErr)
	}
	if video.UserId != userId {
		return errno.NotVideoOwnerErr
	}
	if err = db.DeleteVideo(service.ctx, userId, videoId); err != nil {
		return notFound(err, errno.VideoNotFoundErr)
	}
	hlog.CtxInfof(service.ctx, "user %d deleted video %d", userId, videoId)

	if err := redis.RemoveVideoVisit(videoId); err != nil {
		hlog.CtxWarnf(service.ctx, "remove video %d from visit rank failed: %v", videoId, err)
	}
	// 媒体文件的清理不影响删除结果
	if service.store != nil {
		for _, url := range []string{video.VideoUrl, video.ThumbnailUrl} {
			if name, ok := service.store.ObjectName(url); ok {
				if err := service.store.Remove(service.ctx, name); err != nil {
					hlog.CtxWarnf(service.ctx, "remove object %s failed: %v", name, err)
				}
			}
		}
	}
	return nil
}
