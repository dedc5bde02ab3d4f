package db

import (
	"context"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/constants"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var reactionColumns = map[string]string{
	constants.ReactionLike:    colLikes,
	constants.ReactionDislike: colDislikes,
}

func reactionColumn(reactionType string) (string, error) {
	col, ok := reactionColumns[reactionType]
	if !ok {
		return "", errors.Errorf("unknown reaction type %q", reactionType)
	}
	return col, nil
}

// settle 冲突视为无操作成功, 返回值表示本次是否真正修改了数据
func settle(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errConflict):
		return false, nil
	default:
		return false, err
	}
}

func takeVideo(tx *gorm.DB, videoId int64) (*model.Video, error) {
	video := &model.Video{}
	if err := tx.Select("video_id", "user_id").Where("video_id = ?", videoId).Take(video).Error; err != nil {
		return nil, err
	}
	return video, nil
}

// lockVideo 事务内对视频行加写锁, 与删除视频的事务串行
func lockVideo(tx *gorm.DB, videoId int64) error {
	_, err := takeVideo(tx.Clauses(clause.Locking{Strength: "UPDATE"}), videoId)
	return err
}

func lockUser(tx *gorm.DB, userId int64) error {
	user := &model.User{}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("user_id").Where("user_id = ?", userId).Take(user).Error
}

// GetVideo 读取视频以及作者
func GetVideo(ctx context.Context, videoId int64) (*model.Video, error) {
	video := &model.Video{}
	if err := DB.WithContext(ctx).Preload("User").Where("video_id = ?", videoId).Take(video).Error; err != nil {
		return nil, err
	}
	return video, nil
}

func GetVideoOwner(ctx context.Context, videoId int64) (int64, error) {
	video, err := takeVideo(DB.WithContext(ctx), videoId)
	if err != nil {
		return 0, err
	}
	return video.UserId, nil
}

// RecordView 每个用户对每个视频只计一次观看
// 返回的 bool 为 false 表示观看记录已存在, 计数没有变化
func RecordView(ctx context.Context, userId, videoId int64) (*model.Video, bool, error) {
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockVideo(tx, videoId); err != nil {
			return err
		}
		if err := insertIgnore(tx, &model.View{UserId: userId, VideoId: videoId}); err != nil {
			return err
		}
		return growVideo(tx, videoId, map[string]interface{}{colViews: incrExpr(colViews)})
	})
	applied, err := settle(err)
	if err != nil {
		return nil, false, err
	}
	video, err := GetVideo(ctx, videoId)
	if err != nil {
		return nil, false, err
	}
	return video, applied, nil
}

// SetReaction 没有反应时新增, 同类型再次提交时取消, 不同类型时切换
func SetReaction(ctx context.Context, userId, videoId int64, desired string) (*model.ReactionCounts, bool, error) {
	desiredCol, err := reactionColumn(desired)
	if err != nil {
		return nil, false, err
	}

	err = DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockVideo(tx, videoId); err != nil {
			return err
		}

		existing := &model.Reaction{}
		err := tx.Where("user_id = ? AND video_id = ?", userId, videoId).Take(existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := insertIgnore(tx, &model.Reaction{UserId: userId, VideoId: videoId, Type: desired}); err != nil {
				return err
			}
			return growVideo(tx, videoId, map[string]interface{}{desiredCol: incrExpr(desiredCol)})

		case err != nil:
			return errors.Wrapf(err, "find reaction user=%d video=%d", userId, videoId)

		case existing.Type == desired:
			res := tx.Where("reaction_id = ? AND type = ?", existing.ReactionId, existing.Type).Delete(&model.Reaction{})
			if err := guarded(res); err != nil {
				return err
			}
			return adjustVideo(tx, videoId, map[string]interface{}{desiredCol: decrExpr(desiredCol)})

		default:
			oldCol, err := reactionColumn(existing.Type)
			if err != nil {
				return err
			}
			res := tx.Model(&model.Reaction{}).
				Where("reaction_id = ? AND type = ?", existing.ReactionId, existing.Type).
				Update("type", desired)
			if err := guarded(res); err != nil {
				return err
			}
			return growVideo(tx, videoId, map[string]interface{}{
				oldCol:     decrExpr(oldCol),
				desiredCol: incrExpr(desiredCol),
			})
		}
	})
	applied, err := settle(err)
	if err != nil {
		return nil, false, err
	}
	counts, err := GetReactionCounts(ctx, userId, videoId)
	if err != nil {
		return nil, false, err
	}
	return counts, applied, nil
}

// GetReactionCounts 视频的点赞点踩数以及该用户当前的反应
func GetReactionCounts(ctx context.Context, userId, videoId int64) (*model.ReactionCounts, error) {
	video := &model.Video{}
	if err := DB.WithContext(ctx).Select("video_id", "likes", "dislikes").Where("video_id = ?", videoId).Take(video).Error; err != nil {
		return nil, err
	}
	counts := &model.ReactionCounts{Likes: video.Likes, Dislikes: video.Dislikes}
	if userId <= 0 {
		return counts, nil
	}
	types := make([]string, 0, 1)
	if err := DB.WithContext(ctx).Model(&model.Reaction{}).
		Where("user_id = ? AND video_id = ?", userId, videoId).
		Pluck("type", &types).Error; err != nil {
		return nil, errors.Wrapf(err, "pluck reaction user=%d video=%d", userId, videoId)
	}
	if len(types) > 0 {
		counts.Reaction = types[0]
	}
	return counts, nil
}

// ToggleSubscription 订阅存在则取消, 否则新增
func ToggleSubscription(ctx context.Context, subscriberId, channelId int64) (*model.SubscriptionState, bool, error) {
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUser(tx, channelId); err != nil {
			return err
		}

		existing := &model.Subscription{}
		err := tx.Where("subscriber_id = ? AND channel_id = ?", subscriberId, channelId).Take(existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := insertIgnore(tx, &model.Subscription{SubscriberId: subscriberId, ChannelId: channelId}); err != nil {
				return err
			}
			return growUser(tx, channelId, map[string]interface{}{colSubscribers: incrExpr(colSubscribers)})

		case err != nil:
			return errors.Wrapf(err, "find subscription subscriber=%d channel=%d", subscriberId, channelId)

		default:
			res := tx.Where("subscription_id = ?", existing.SubscriptionId).Delete(&model.Subscription{})
			if err := guarded(res); err != nil {
				return err
			}
			return adjustUser(tx, channelId, map[string]interface{}{colSubscribers: decrExpr(colSubscribers)})
		}
	})
	applied, err := settle(err)
	if err != nil {
		return nil, false, err
	}
	state, err := GetSubscriptionState(ctx, subscriberId, channelId)
	if err != nil {
		return nil, false, err
	}
	return state, applied, nil
}

// GetSubscriptionState subscriberId 为0时只返回订阅数
func GetSubscriptionState(ctx context.Context, subscriberId, channelId int64) (*model.SubscriptionState, error) {
	user := &model.User{}
	if err := DB.WithContext(ctx).Select("user_id", "subscribers").Where("user_id = ?", channelId).Take(user).Error; err != nil {
		return nil, err
	}
	state := &model.SubscriptionState{Subscribers: user.Subscribers, ChannelId: channelId}
	if subscriberId <= 0 {
		return state, nil
	}
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberId, channelId).
		Count(&count).Error; err != nil {
		return nil, errors.Wrapf(err, "count subscription subscriber=%d channel=%d", subscriberId, channelId)
	}
	state.IsSubscribed = count > 0
	return state, nil
}

// RecountVideo 根据互动记录重新计算视频的计数
func RecountVideo(ctx context.Context, videoId int64) (*model.Video, error) {
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockVideo(tx, videoId); err != nil {
			return err
		}
		var views, likes, dislikes int64
		if err := tx.Model(&model.View{}).Where("video_id = ?", videoId).Count(&views).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Reaction{}).Where("video_id = ? AND type = ?", videoId, constants.ReactionLike).Count(&likes).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Reaction{}).Where("video_id = ? AND type = ?", videoId, constants.ReactionDislike).Count(&dislikes).Error; err != nil {
			return err
		}
		return adjustVideo(tx, videoId, map[string]interface{}{
			colViews:    views,
			colLikes:    likes,
			colDislikes: dislikes,
		})
	})
	if err != nil {
		return nil, err
	}
	return GetVideo(ctx, videoId)
}

// RecountChannel 根据订阅记录重新计算频道订阅数
func RecountChannel(ctx context.Context, channelId int64) (int64, error) {
	var subscribers int64
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUser(tx, channelId); err != nil {
			return err
		}
		if err := tx.Model(&model.Subscription{}).Where("channel_id = ?", channelId).Count(&subscribers).Error; err != nil {
			return err
		}
		return adjustUser(tx, channelId, map[string]interface{}{colSubscribers: subscribers})
	})
	if err != nil {
		return 0, err
	}
	return subscribers, nil
}
