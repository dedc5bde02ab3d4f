package service

import (
	"context"

	"VidHub.com/cmd/model"
	"VidHub.com/cmd/video/dal/db"
	"VidHub.com/pkg/errno"
)

type VideoListService struct {
	ctx context.Context
}

func NewVideoListService(ctx context.Context) *VideoListService {
	return &VideoListService{ctx: ctx}
}

// ListVideos 最新发布的视频在前
func (service *VideoListService) ListVideos(page, limit int) ([]*model.Video, int64, error) {
	limit = normalizeLimit(limit)
	if page < 1 {
		page = 1
	}
	return db.ListVideos(service.ctx, (page-1)*limit, limit)
}

// GetVideo viewerId 大于0时附带该用户的反应和观看状态
func (service *VideoListService) GetVideo(viewerId, videoId int64) (*model.Video, error) {
	video, err := db.GetVideo(service.ctx, videoId)
	if err != nil {
		return nil, notFound(err, errno.VideoNotFoundErr)
	}
	if viewerId <= 0 {
		return video, nil
	}
	if video.Reaction, video.Viewed, err = db.GetViewerState(service.ctx, viewerId, videoId); err != nil {
		return nil, err
	}
	return video, nil
}

// ListUserVideos 频道主页的视频列表
func (service *VideoListService) ListUserVideos(userId int64) ([]*model.Video, error) {
	exists, err := db.CheckUserExists(service.ctx, userId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errno.UserNotFoundErr
	}
	return db.ListVideosByUser(service.ctx, userId)
}

// Dashboard 只统计当前登录用户自己的视频
func (service *VideoListService) Dashboard(userId int64) (*model.DashboardStats, error) {
	stats, err := db.Dashboard(service.ctx, userId)
	if err != nil {
		return nil, notFound(err, errno.UserNotFoundErr)
	}
	return stats, nil
}
