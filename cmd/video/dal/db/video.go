package db

import (
	"context"

	"VidHub.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func CreateVideo(ctx context.Context, video *model.Video) error {
	if err := DB.WithContext(ctx).Create(video).Error; err != nil {
		return errors.Wrapf(err, "CreateVideo failed,video_id: %d", video.VideoId)
	}
	return nil
}

func GetVideo(ctx context.Context, videoId int64) (*model.Video, error) {
	video := &model.Video{}
	if err := DB.WithContext(ctx).Preload("User").Where("video_id = ?", videoId).Take(video).Error; err != nil {
		return nil, err
	}
	return video, nil
}

// GetViewerState 用户对视频的反应类型以及是否看过
func GetViewerState(ctx context.Context, userId, videoId int64) (string, bool, error) {
	types := make([]string, 0, 1)
	if err := DB.WithContext(ctx).Model(&model.Reaction{}).
		Where("user_id = ? AND video_id = ?", userId, videoId).
		Pluck("type", &types).Error; err != nil {
		return "", false, errors.Wrapf(err, "pluck reaction user=%d video=%d", userId, videoId)
	}
	var views int64
	if err := DB.WithContext(ctx).Model(&model.View{}).
		Where("user_id = ? AND video_id = ?", userId, videoId).
		Count(&views).Error; err != nil {
		return "", false, errors.Wrapf(err, "count view user=%d video=%d", userId, videoId)
	}
	reaction := ""
	if len(types) > 0 {
		reaction = types[0]
	}
	return reaction, views > 0, nil
}

// ListVideos 按发布时间倒序
func ListVideos(ctx context.Context, offset, limit int) ([]*model.Video, int64, error) {
	videos := make([]*model.Video, 0, limit)
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Video{}).Count(&count).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count videos")
	}
	if err := DB.WithContext(ctx).Preload("User").
		Order("created_at DESC").Order("video_id DESC").
		Offset(offset).Limit(limit).
		Find(&videos).Error; err != nil {
		return nil, 0, errors.Wrap(err, "ListVideos failed")
	}
	return videos, count, nil
}

// 获取用户发布的视频
func ListVideosByUser(ctx context.Context, userId int64) ([]*model.Video, error) {
	videos := make([]*model.Video, 0)
	if err := DB.WithContext(ctx).Preload("User").
		Where("user_id = ?", userId).
		Order("created_at DESC").Order("video_id DESC").
		Find(&videos).Error; err != nil {
		return nil, errors.Wrapf(err, "ListVideosByUser failed,user_id: %d", userId)
	}
	return videos, nil
}

// GetVideosByIds 按传入id的顺序返回, 已删除的视频被跳过
func GetVideosByIds(ctx context.Context, ids []int64) ([]*model.Video, error) {
	if len(ids) == 0 {
		return []*model.Video{}, nil
	}
	found := make([]*model.Video, 0, len(ids))
	if err := DB.WithContext(ctx).Preload("User").Where("video_id IN ?", ids).Find(&found).Error; err != nil {
		return nil, errors.Wrap(err, "GetVideosByIds failed")
	}
	byId := make(map[int64]*model.Video, len(found))
	for _, v := range found {
		byId[v.VideoId] = v
	}
	videos := make([]*model.Video, 0, len(found))
	for _, id := range ids {
		if v, ok := byId[id]; ok {
			videos = append(videos, v)
		}
	}
	return videos, nil
}

// TopVideos 排行缓存不可用时从数据库按观看数排序
func TopVideos(ctx context.Context, limit int) ([]*model.Video, error) {
	videos := make([]*model.Video, 0, limit)
	if err := DB.WithContext(ctx).Preload("User").
		Order("views DESC").Order("created_at DESC").
		Limit(limit).
		Find(&videos).Error; err != nil {
		return nil, errors.Wrap(err, "TopVideos failed")
	}
	return videos, nil
}

// AllViewCounts 用于启动时重建排行
func AllViewCounts(ctx context.Context) (map[int64]int64, error) {
	rows := make([]*model.Video, 0)
	if err := DB.WithContext(ctx).Select("video_id", "views").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "AllViewCounts failed")
	}
	counts := make(map[int64]int64, len(rows))
	for _, v := range rows {
		counts[v.VideoId] = v.Views
	}
	return counts, nil
}

// Dashboard 创作者的汇总数据
func Dashboard(ctx context.Context, userId int64) (*model.DashboardStats, error) {
	user := &model.User{}
	if err := DB.WithContext(ctx).Where("user_id = ?", userId).Take(user).Error; err != nil {
		return nil, err
	}
	videos, err := ListVideosByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	stats := &model.DashboardStats{
		TotalVideos: int64(len(videos)),
		Subscribers: user.Subscribers,
		Videos:      videos,
	}
	for _, v := range videos {
		stats.TotalViews += v.Views
		stats.TotalLikes += v.Likes
	}
	return stats, nil
}

// DeleteVideo 在一个事务中删除视频以及它的观看和反应记录, 订阅属于频道不受影响
func DeleteVideo(ctx context.Context, userId, videoId int64) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("video_id = ? AND user_id = ?", videoId, userId).Delete(&model.Video{})
		if res.Error != nil {
			return errors.Wrapf(res.Error, "delete video %d", videoId)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("video_id = ?", videoId).Delete(&model.View{}).Error; err != nil {
			return errors.Wrapf(err, "delete views of video %d", videoId)
		}
		if err := tx.Where("video_id = ?", videoId).Delete(&model.Reaction{}).Error; err != nil {
			return errors.Wrapf(err, "delete reactions of video %d", videoId)
		}
		return nil
	})
}

func CheckUserExists(ctx context.Context, userId int64) (bool, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userId).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "查询用户存在性失败")
	}
	return count > 0, nil
}
