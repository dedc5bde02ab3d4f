package service

import (
	"VidHub.com/cmd/interaction/dal/db"
	"VidHub.com/cmd/model"
	"VidHub.com/pkg/broadcast"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// RecordView 重复调用不会报错, 只有第一次会增加观看数
func (s *EngagementService) RecordView(userId, videoId int64) (*model.Video, error) {
	video, applied, err := db.RecordView(s.ctx, userId, videoId)
	observe("view", applied, err)
	if err != nil {
		return nil, notFound(err, errno.VideoNotFoundErr)
	}
	if !applied {
		return video, nil
	}

	hlog.CtxInfof(s.ctx, "user %d viewed video %d, views=%d", userId, videoId, video.Views)
	s.publish(broadcast.EventViewUpdated, videoId, broadcast.ViewData{Views: video.Views})
	if s.ranker != nil {
		if err := s.ranker.UpdateVideoViews(s.ctx, videoId, video.Views); err != nil {
			hlog.CtxWarnf(s.ctx, "update popular rank video=%d failed: %v", videoId, err)
		}
	}
	return video, nil
}
