package service

import (
	"VidHub.com/cmd/interaction/dal/db"
	"VidHub.com/cmd/model"
	"VidHub.com/pkg/broadcast"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func ValidReaction(reactionType string) bool {
	return reactionType == constants.ReactionLike || reactionType == constants.ReactionDislike
}

// SetReaction 三态切换: 无 -> 该反应 -> 无, 不同类型之间直接切换
func (s *EngagementService) SetReaction(userId, videoId int64, reactionType string) (*model.ReactionCounts, error) {
	if !ValidReaction(reactionType) {
		return nil, errno.ReactionTypeErr
	}

	counts, applied, err := db.SetReaction(s.ctx, userId, videoId, reactionType)
	observe("reaction", applied, err)
	if err != nil {
		return nil, notFound(err, errno.VideoNotFoundErr)
	}
	if !applied {
		return counts, nil
	}

	hlog.CtxInfof(s.ctx, "user %d reacted %s on video %d, likes=%d dislikes=%d",
		userId, reactionType, videoId, counts.Likes, counts.Dislikes)
	s.publish(broadcast.EventReactionUpdated, videoId, broadcast.ReactionData{
		Likes:    counts.Likes,
		Dislikes: counts.Dislikes,
	})

	if counts.Reaction == constants.ReactionLike && s.producer != nil {
		if ownerId, err := db.GetVideoOwner(s.ctx, videoId); err == nil {
			s.notify(mq.NewEngagementEvent(mq.EventTypeVideoLike, userId, ownerId, videoId))
		}
	}
	return counts, nil
}
