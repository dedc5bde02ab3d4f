package rpc

import (
	"context"

	"VidHub.com/cmd/interaction/service"
	"VidHub.com/cmd/model"
	"VidHub.com/cmd/video/infras/redis"
)

func engagement(ctx context.Context) *service.EngagementService {
	opts := []service.Option{service.WithRanker(redis.VisitRank{})}
	if Producer != nil {
		opts = append(opts, service.WithProducer(Producer))
	}
	return service.NewEngagementService(ctx, Bus, opts...)
}

func RecordView(ctx context.Context, userId, videoId int64) (*model.Video, error) {
	return engagement(ctx).RecordView(userId, videoId)
}

func SetReaction(ctx context.Context, userId, videoId int64, reactionType string) (*model.ReactionCounts, error) {
	return engagement(ctx).SetReaction(userId, videoId, reactionType)
}

func SetSubscription(ctx context.Context, subscriberId, videoId int64) (*model.SubscriptionState, error) {
	return engagement(ctx).SetSubscription(subscriberId, videoId)
}

func GetSubscriptionStatus(ctx context.Context, requesterId, videoId int64) (*model.SubscriptionState, error) {
	return engagement(ctx).GetSubscriptionStatus(requesterId, videoId)
}

func RecountVideo(ctx context.Context, userId, videoId int64) (*model.Video, error) {
	return engagement(ctx).RecountVideo(userId, videoId)
}
