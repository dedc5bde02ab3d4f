package service

import (
	"VidHub.com/cmd/interaction/dal/db"
	"VidHub.com/cmd/model"
	"VidHub.com/pkg/broadcast"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// SetSubscription 通过视频找到频道后切换订阅状态
// 订阅属于频道, 但事件只广播到发起操作的视频房间
func (s *EngagementService) SetSubscription(subscriberId, videoId int64) (*model.SubscriptionState, error) {
	channelId, err := db.GetVideoOwner(s.ctx, videoId)
	if err != nil {
		return nil, notFound(err, errno.VideoNotFoundErr)
	}
	if channelId == subscriberId {
		return nil, errno.SelfSubscribeErr
	}

	state, applied, err := db.ToggleSubscription(s.ctx, subscriberId, channelId)
	observe("subscription", applied, err)
	if err != nil {
		return nil, notFound(err, errno.UserNotFoundErr)
	}
	if !applied {
		return state, nil
	}

	hlog.CtxInfof(s.ctx, "user %d toggled subscription to channel %d, subscribed=%v subscribers=%d",
		subscriberId, channelId, state.IsSubscribed, state.Subscribers)
	s.publish(broadcast.EventSubscriberUpdated, videoId, broadcast.SubscriberData{Subscribers: state.Subscribers})

	eventType := mq.EventTypeUnsubscribe
	if state.IsSubscribed {
		eventType = mq.EventTypeSubscribe
	}
	s.notify(mq.NewEngagementEvent(eventType, subscriberId, channelId, videoId))
	return state, nil
}

// GetSubscriptionStatus 只读, requesterId 为0时 IsSubscribed 恒为 false
func (s *EngagementService) GetSubscriptionStatus(requesterId, videoId int64) (*model.SubscriptionState, error) {
	channelId, err := db.GetVideoOwner(s.ctx, videoId)
	if err != nil {
		return nil, notFound(err, errno.VideoNotFoundErr)
	}
	state, err := db.GetSubscriptionState(s.ctx, requesterId, channelId)
	if err != nil {
		return nil, notFound(err, errno.UserNotFoundErr)
	}
	return state, nil
}
