package watch

import (
	"testing"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/broadcast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loaded(t *testing.T) *State {
	s := New(7)
	s.Load(&model.Video{VideoId: 7, Views: 10, Likes: 3, Dislikes: 1, User: &model.User{Subscribers: 5}})
	return s
}

func event(t *testing.T, name string, videoId int64, data interface{}) *broadcast.Event {
	e, err := broadcast.NewEvent(name, videoId, data)
	require.NoError(t, err)
	return e
}

func TestOptimisticReactionConfirmed(t *testing.T) {
	s := loaded(t)

	tk := s.BeginReaction("like")
	snap := s.Snapshot()
	assert.Equal(t, int64(4), snap.Likes)
	assert.Equal(t, "like", snap.Reaction)
	assert.Equal(t, int64(3), s.Server().Likes)

	// 服务端的结果优先于本地的猜测
	s.ConfirmReaction(tk, &model.ReactionCounts{Likes: 9, Dislikes: 1, Reaction: "like"})
	snap = s.Snapshot()
	assert.Equal(t, int64(9), snap.Likes)
	assert.Equal(t, 0, s.Pending())
}

func TestOptimisticReactionSwitchAndToggle(t *testing.T) {
	s := loaded(t)
	s.ConfirmReaction(s.BeginReaction("like"), &model.ReactionCounts{Likes: 4, Dislikes: 1, Reaction: "like"})

	tk := s.BeginReaction("dislike")
	snap := s.Snapshot()
	assert.Equal(t, int64(3), snap.Likes)
	assert.Equal(t, int64(2), snap.Dislikes)
	assert.Equal(t, "dislike", snap.Reaction)
	s.ConfirmReaction(tk, &model.ReactionCounts{Likes: 3, Dislikes: 2, Reaction: "dislike"})

	tk = s.BeginReaction("dislike")
	snap = s.Snapshot()
	assert.Equal(t, int64(1), snap.Dislikes)
	assert.Equal(t, "", snap.Reaction)
	s.Fail(tk)
	assert.Equal(t, "dislike", s.Snapshot().Reaction)
}

func TestFailRollsBack(t *testing.T) {
	s := loaded(t)
	tk := s.BeginSubscription()
	assert.True(t, s.Snapshot().Subscribed)
	assert.Equal(t, int64(6), s.Snapshot().Subscribers)

	s.Fail(tk)
	assert.Equal(t, s.Server(), s.Snapshot())
	assert.False(t, s.Snapshot().Subscribed)
	// 已经结束的 ticket 再次结束没有影响
	s.Fail(tk)
	assert.Equal(t, 0, s.Pending())
}

func TestViewCountedOnce(t *testing.T) {
	s := loaded(t)
	s.ConfirmView(s.BeginView(), &model.Video{Views: 11, Likes: 3, Dislikes: 1})
	assert.True(t, s.Snapshot().Viewed)

	tk := s.BeginView()
	assert.Equal(t, int64(11), s.Snapshot().Views)
	s.ConfirmView(tk, &model.Video{Views: 11, Likes: 3, Dislikes: 1})
	assert.Equal(t, int64(11), s.Snapshot().Views)
}

func TestApplyEventLastWriteWins(t *testing.T) {
	s := loaded(t)
	require.NoError(t, s.ApplyEvent(event(t, broadcast.EventViewUpdated, 7, broadcast.ViewData{Views: 20})))
	require.NoError(t, s.ApplyEvent(event(t, broadcast.EventReactionUpdated, 7, broadcast.ReactionData{Likes: 8, Dislikes: 2})))
	require.NoError(t, s.ApplyEvent(event(t, broadcast.EventSubscriberUpdated, 7, broadcast.SubscriberData{Subscribers: 50})))
	// 其它视频的事件被忽略
	require.NoError(t, s.ApplyEvent(event(t, broadcast.EventViewUpdated, 8, broadcast.ViewData{Views: 99})))

	snap := s.Snapshot()
	assert.Equal(t, int64(20), snap.Views)
	assert.Equal(t, int64(8), snap.Likes)
	assert.Equal(t, int64(2), snap.Dislikes)
	assert.Equal(t, int64(50), snap.Subscribers)
}

func TestEventDuringPendingOp(t *testing.T) {
	s := loaded(t)
	tk := s.BeginReaction("like")
	require.NoError(t, s.ApplyEvent(event(t, broadcast.EventReactionUpdated, 7, broadcast.ReactionData{Likes: 6, Dislikes: 1})))
	assert.Equal(t, int64(7), s.Snapshot().Likes)

	s.ConfirmReaction(tk, &model.ReactionCounts{Likes: 6, Dislikes: 1, Reaction: "like"})
	assert.Equal(t, int64(6), s.Snapshot().Likes)
	assert.Equal(t, "like", s.Snapshot().Reaction)
}

func TestCountersNeverNegative(t *testing.T) {
	s := New(1)
	s.ConfirmReaction(s.BeginReaction("like"), &model.ReactionCounts{Reaction: "like"})
	s.BeginReaction("like")
	assert.Equal(t, int64(0), s.Snapshot().Likes)

	s.ApplySubscription(&model.SubscriptionState{IsSubscribed: true})
	s.BeginSubscription()
	assert.Equal(t, int64(0), s.Snapshot().Subscribers)
}

func TestLoadCarriesOwnReaction(t *testing.T) {
	s := New(7)
	s.Load(&model.Video{VideoId: 7, Likes: 3, Dislikes: 1, Reaction: "like", Viewed: true})
	assert.Equal(t, "like", s.Snapshot().Reaction)
	assert.True(t, s.Snapshot().Viewed)

	// 已经点过赞, 再次点赞是取消
	s.BeginReaction("like")
	snap := s.Snapshot()
	assert.Equal(t, int64(2), snap.Likes)
	assert.Equal(t, "", snap.Reaction)

	s.BeginView()
	assert.Equal(t, int64(0), s.Snapshot().Views)
}
