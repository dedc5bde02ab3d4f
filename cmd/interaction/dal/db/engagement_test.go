package db

import (
	"context"
	"testing"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/database/databasetest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (owner, viewer *model.User, video *model.Video) {
	t.Helper()
	Init(databasetest.Open(t))

	owner = &model.User{Name: "owner", Email: "owner@example.com", Password: "x"}
	viewer = &model.User{Name: "viewer", Email: "viewer@example.com", Password: "x"}
	require.NoError(t, DB.Create(owner).Error)
	require.NoError(t, DB.Create(viewer).Error)

	video = &model.Video{VideoId: 1001, UserId: owner.UserId, Title: "v1", VideoUrl: "/uploads/v1.mp4"}
	require.NoError(t, DB.Create(video).Error)
	return
}

func TestRecordView(t *testing.T) {
	ctx := context.Background()
	_, viewer, video := setup(t)

	v, applied, err := RecordView(ctx, viewer.UserId, video.VideoId)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, int64(1), v.Views)
	require.NotNil(t, v.User)

	for i := 0; i < 3; i++ {
		v, applied, err = RecordView(ctx, viewer.UserId, video.VideoId)
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, int64(1), v.Views)
	}

	_, _, err = RecordView(ctx, viewer.UserId, 999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSetReaction(t *testing.T) {
	ctx := context.Background()
	_, viewer, video := setup(t)

	t.Run("like", func(t *testing.T) {
		counts, applied, err := SetReaction(ctx, viewer.UserId, video.VideoId, constants.ReactionLike)
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, &model.ReactionCounts{Likes: 1, Dislikes: 0, Reaction: constants.ReactionLike}, counts)
	})

	t.Run("switch", func(t *testing.T) {
		counts, applied, err := SetReaction(ctx, viewer.UserId, video.VideoId, constants.ReactionDislike)
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, &model.ReactionCounts{Likes: 0, Dislikes: 1, Reaction: constants.ReactionDislike}, counts)

		var n int64
		require.NoError(t, DB.Model(&model.Reaction{}).Where("user_id = ? AND video_id = ?", viewer.UserId, video.VideoId).Count(&n).Error)
		assert.Equal(t, int64(1), n)
	})

	t.Run("toggle off", func(t *testing.T) {
		counts, applied, err := SetReaction(ctx, viewer.UserId, video.VideoId, constants.ReactionDislike)
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, &model.ReactionCounts{Likes: 0, Dislikes: 0}, counts)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, _, err := SetReaction(ctx, viewer.UserId, video.VideoId, "love")
		assert.Error(t, err)
	})

	t.Run("missing video", func(t *testing.T) {
		_, _, err := SetReaction(ctx, viewer.UserId, 999, constants.ReactionLike)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})
}

func TestCountersClampAtZero(t *testing.T) {
	ctx := context.Background()
	owner, viewer, video := setup(t)

	// 计数和记录不一致时取消点赞, 计数停在0
	require.NoError(t, DB.Create(&model.Reaction{UserId: viewer.UserId, VideoId: video.VideoId, Type: constants.ReactionLike}).Error)
	counts, applied, err := SetReaction(ctx, viewer.UserId, video.VideoId, constants.ReactionLike)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, int64(0), counts.Likes)

	require.NoError(t, DB.Create(&model.Subscription{SubscriberId: viewer.UserId, ChannelId: owner.UserId}).Error)
	state, applied, err := ToggleSubscription(ctx, viewer.UserId, owner.UserId)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, int64(0), state.Subscribers)
	assert.False(t, state.IsSubscribed)
}

func TestToggleSubscription(t *testing.T) {
	ctx := context.Background()
	owner, viewer, _ := setup(t)

	state, applied, err := ToggleSubscription(ctx, viewer.UserId, owner.UserId)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.True(t, state.IsSubscribed)
	assert.Equal(t, int64(1), state.Subscribers)

	state, applied, err = ToggleSubscription(ctx, viewer.UserId, owner.UserId)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.False(t, state.IsSubscribed)
	assert.Equal(t, int64(0), state.Subscribers)

	_, _, err = ToggleSubscription(ctx, viewer.UserId, 999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	state, err = GetSubscriptionState(ctx, 0, owner.UserId)
	require.NoError(t, err)
	assert.False(t, state.IsSubscribed)
}

func TestInsertIgnoreConflict(t *testing.T) {
	_, viewer, video := setup(t)

	require.NoError(t, insertIgnore(DB, &model.View{UserId: viewer.UserId, VideoId: video.VideoId}))
	err := insertIgnore(DB, &model.View{UserId: viewer.UserId, VideoId: video.VideoId})
	assert.True(t, errors.Is(err, errConflict))

	applied, err := settle(err)
	assert.NoError(t, err)
	assert.False(t, applied)
}

func TestGuardedConflict(t *testing.T) {
	_, viewer, video := setup(t)

	r := &model.Reaction{UserId: viewer.UserId, VideoId: video.VideoId, Type: constants.ReactionLike}
	require.NoError(t, DB.Create(r).Error)

	// 另一个请求已经把类型改掉, 条件更新不会命中
	err := guarded(DB.Model(&model.Reaction{}).Where("reaction_id = ? AND type = ?", r.ReactionId, constants.ReactionDislike).Update("type", constants.ReactionLike))
	assert.True(t, errors.Is(err, errConflict))
}

func TestRecount(t *testing.T) {
	ctx := context.Background()
	owner, viewer, video := setup(t)

	require.NoError(t, DB.Create(&model.View{UserId: viewer.UserId, VideoId: video.VideoId}).Error)
	require.NoError(t, DB.Create(&model.View{UserId: owner.UserId, VideoId: video.VideoId}).Error)
	require.NoError(t, DB.Create(&model.Reaction{UserId: viewer.UserId, VideoId: video.VideoId, Type: constants.ReactionDislike}).Error)
	require.NoError(t, DB.Model(&model.Video{}).Where("video_id = ?", video.VideoId).UpdateColumn("likes", 7).Error)

	v, err := RecountVideo(ctx, video.VideoId)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.Views)
	assert.Equal(t, int64(0), v.Likes)
	assert.Equal(t, int64(1), v.Dislikes)

	require.NoError(t, DB.Create(&model.Subscription{SubscriberId: viewer.UserId, ChannelId: owner.UserId}).Error)
	n, err := RecountChannel(ctx, owner.UserId)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

// deleteVideoBeforeInsert 在互动记录插入前, 用同一个事务删除视频及其记录
// 相当于删除视频的事务恰好在存在性检查之后提交
func deleteVideoBeforeInsert(t *testing.T, videoId int64) {
	t.Helper()
	err := DB.Callback().Create().Before("gorm:create").Register("test:delete_video", func(tx *gorm.DB) {
		switch tx.Statement.Dest.(type) {
		case *model.View, *model.Reaction:
		default:
			return
		}
		conn := tx.Session(&gorm.Session{NewDB: true})
		for _, table := range []string{"videos", "views", "reactions"} {
			if err := conn.Exec("DELETE FROM "+table+" WHERE video_id = ?", videoId).Error; err != nil {
				_ = tx.AddError(err)
				return
			}
		}
	})
	require.NoError(t, err)
}

func countRows(t *testing.T, value interface{}, videoId int64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, DB.Model(value).Where("video_id = ?", videoId).Count(&n).Error)
	return n
}

func TestEngagementRollsBackWhenVideoDisappears(t *testing.T) {
	ctx := context.Background()

	t.Run("view", func(t *testing.T) {
		_, viewer, video := setup(t)
		deleteVideoBeforeInsert(t, video.VideoId)

		_, applied, err := RecordView(ctx, viewer.UserId, video.VideoId)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
		assert.False(t, applied)
		assert.Equal(t, int64(0), countRows(t, &model.View{}, video.VideoId))

		stored := &model.Video{}
		require.NoError(t, DB.Where("video_id = ?", video.VideoId).Take(stored).Error)
		assert.Equal(t, int64(0), stored.Views)
	})

	t.Run("reaction", func(t *testing.T) {
		_, viewer, video := setup(t)
		deleteVideoBeforeInsert(t, video.VideoId)

		_, applied, err := SetReaction(ctx, viewer.UserId, video.VideoId, constants.ReactionLike)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
		assert.False(t, applied)
		assert.Equal(t, int64(0), countRows(t, &model.Reaction{}, video.VideoId))

		stored := &model.Video{}
		require.NoError(t, DB.Where("video_id = ?", video.VideoId).Take(stored).Error)
		assert.Equal(t, int64(0), stored.Likes)
	})
}

func TestGrowCounterMissingRow(t *testing.T) {
	setup(t)
	err := DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.View{UserId: 1, VideoId: 404}).Error; err != nil {
			return err
		}
		return growVideo(tx, 404, map[string]interface{}{colViews: incrExpr(colViews)})
	})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.Equal(t, int64(0), countRows(t, &model.View{}, 404))

	// 截断在0的递减不改变行, 不视为错误
	require.NoError(t, adjustVideo(DB, 1001, map[string]interface{}{colLikes: decrExpr(colLikes)}))
}
