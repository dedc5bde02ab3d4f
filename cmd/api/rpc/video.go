package rpc

import (
	"context"
	"mime/multipart"

	"VidHub.com/cmd/model"
	"VidHub.com/cmd/video/service"
	"VidHub.com/pkg/errno"
)

func ListVideos(ctx context.Context, page, limit int) ([]*model.Video, int64, error) {
	return service.NewVideoListService(ctx).ListVideos(page, limit)
}

func PopularVideos(ctx context.Context, limit int) ([]*model.Video, error) {
	return service.NewPopularVideoService(ctx).Popular(limit)
}

func GetVideo(ctx context.Context, viewerId, videoId int64) (*model.Video, error) {
	return service.NewVideoListService(ctx).GetVideo(viewerId, videoId)
}

func ListUserVideos(ctx context.Context, userId int64) ([]*model.Video, error) {
	return service.NewVideoListService(ctx).ListUserVideos(userId)
}

func Dashboard(ctx context.Context, userId int64) (*model.DashboardStats, error) {
	return service.NewVideoListService(ctx).Dashboard(userId)
}

func UploadVideo(ctx context.Context, userId int64, req *model.UploadVideoRequest, videoFile, thumbFile *multipart.FileHeader) (*model.Video, error) {
	if Store == nil {
		return nil, errno.UploadErr.WithMessage("Storage is not configured")
	}
	return service.NewVideoUploadService(ctx, Store).UploadVideo(userId, req, videoFile, thumbFile)
}

func DeleteVideo(ctx context.Context, userId, videoId int64) error {
	return service.NewDeleteVideoService(ctx, Store).DeleteVideo(userId, videoId)
}
