package service

import (
	"VidHub.com/cmd/interaction/dal/db"
	"VidHub.com/cmd/model"
	"VidHub.com/pkg/broadcast"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// RecountVideo 由视频作者触发, 按互动记录修复反范式计数并广播最新值
func (s *EngagementService) RecountVideo(userId, videoId int64) (*model.Video, error) {
	ownerId, err := db.GetVideoOwner(s.ctx, videoId)
	if err != nil {
		return nil, notFound(err, errno.VideoNotFoundErr)
	}
	if ownerId != userId {
		return nil, errno.NotVideoOwnerErr
	}

	video, err := db.RecountVideo(s.ctx, videoId)
	if err != nil {
		return nil, notFound(err, errno.VideoNotFoundErr)
	}
	subscribers, err := db.RecountChannel(s.ctx, ownerId)
	if err != nil {
		return nil, notFound(err, errno.UserNotFoundErr)
	}
	if video.User != nil {
		video.User.Subscribers = subscribers
	}

	hlog.CtxInfof(s.ctx, "recounted video %d: views=%d likes=%d dislikes=%d subscribers=%d",
		videoId, video.Views, video.Likes, video.Dislikes, subscribers)
	s.publish(broadcast.EventViewUpdated, videoId, broadcast.ViewData{Views: video.Views})
	s.publish(broadcast.EventReactionUpdated, videoId, broadcast.ReactionData{Likes: video.Likes, Dislikes: video.Dislikes})
	s.publish(broadcast.EventSubscriberUpdated, videoId, broadcast.SubscriberData{Subscribers: subscribers})
	return video, nil
}
