// Package watch 观看页的本地状态: 服务端确认的快照加上尚未确认的乐观修改
package watch

import (
	"sync"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/broadcast"
	"VidHub.com/pkg/constants"
	"github.com/pkg/errors"
)

type Snapshot struct {
	Views       int64
	Likes       int64
	Dislikes    int64
	Subscribers int64
	// Reaction 当前用户的反应, 空字符串表示没有
	Reaction   string
	Subscribed bool
	Viewed     bool
}

// Ticket 标识一次乐观修改, 由 Confirm 或 Fail 结束
type Ticket uint64

type pendingOp struct {
	ticket Ticket
	apply  func(s *Snapshot)
}

// State 并发安全, 广播事件和请求响应可以在不同的 goroutine 中到达
type State struct {
	mu      sync.Mutex
	videoId int64
	server  Snapshot
	pending []pendingOp
	next    Ticket
}

func New(videoId int64) *State {
	return &State{videoId: videoId}
}

func (s *State) VideoId() int64 {
	return s.videoId
}

// Load 用视频详情初始化计数和自己的反应, 不影响进行中的修改
func (s *State) Load(video *model.Video) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.server.Views = video.Views
	s.server.Likes = video.Likes
	s.server.Dislikes = video.Dislikes
	s.server.Reaction = video.Reaction
	s.server.Viewed = video.Viewed
	if video.User != nil {
		s.server.Subscribers = video.User.Subscribers
	}
}

// Snapshot 返回界面应该展示的值
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// Server 只包含服务端确认过的值
func (s *State) Server() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.server
}

func (s *State) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *State) view() Snapshot {
	snap := s.server
	for _, op := range s.pending {
		op.apply(&snap)
	}
	return snap
}

func (s *State) begin(apply func(snap *Snapshot)) Ticket {
	s.next++
	t := s.next
	s.pending = append(s.pending, pendingOp{ticket: t, apply: apply})
	return t
}

// finish 移除乐观修改, 返回它是否还在等待
func (s *State) finish(t Ticket) bool {
	for i, op := range s.pending {
		if op.ticket == t {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return true
		}
	}
	return false
}

func floor(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}

func adjust(snap *Snapshot, reaction string, delta int64) {
	switch reaction {
	case constants.ReactionLike:
		snap.Likes = floor(snap.Likes + delta)
	case constants.ReactionDislike:
		snap.Dislikes = floor(snap.Dislikes + delta)
	}
}

// BeginView 同一个用户只计一次观看
func (s *State) BeginView() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.begin(func(snap *Snapshot) {
		if snap.Viewed {
			return
		}
		snap.Viewed = true
		snap.Views++
	})
}

func (s *State) ConfirmView(t Ticket, video *model.Video) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish(t)
	s.server.Viewed = true
	s.server.Views = video.Views
	s.server.Likes = video.Likes
	s.server.Dislikes = video.Dislikes
}

// BeginReaction 与服务端相同的三态切换: 无 -> 类型, 相同类型 -> 无, 不同类型 -> 切换
func (s *State) BeginReaction(desired string) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.begin(func(snap *Snapshot) {
		switch snap.Reaction {
		case "":
			adjust(snap, desired, 1)
			snap.Reaction = desired
		case desired:
			adjust(snap, desired, -1)
			snap.Reaction = ""
		default:
			adjust(snap, snap.Reaction, -1)
			adjust(snap, desired, 1)
			snap.Reaction = desired
		}
	})
}

// ConfirmReaction 采用服务端返回的计数, 不假设乐观修改与服务端一致
func (s *State) ConfirmReaction(t Ticket, counts *model.ReactionCounts) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish(t)
	s.server.Likes = counts.Likes
	s.server.Dislikes = counts.Dislikes
	s.server.Reaction = counts.Reaction
}

func (s *State) BeginSubscription() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.begin(func(snap *Snapshot) {
		if snap.Subscribed {
			snap.Subscribers = floor(snap.Subscribers - 1)
		} else {
			snap.Subscribers++
		}
		snap.Subscribed = !snap.Subscribed
	})
}

func (s *State) ConfirmSubscription(t Ticket, state *model.SubscriptionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish(t)
	s.applySubscription(state)
}

// ApplySubscription 采用订阅状态查询的结果
func (s *State) ApplySubscription(state *model.SubscriptionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applySubscription(state)
}

func (s *State) applySubscription(state *model.SubscriptionState) {
	s.server.Subscribers = state.Subscribers
	s.server.Subscribed = state.IsSubscribed
}

// Fail 请求失败时丢弃对应的乐观修改, 展示值回到服务端快照
func (s *State) Fail(t Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish(t)
}

// ApplyEvent 广播携带的是绝对值, 按字段组直接覆盖
func (s *State) ApplyEvent(e *broadcast.Event) error {
	if e.VideoId != s.videoId {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch e.Event {
	case broadcast.EventViewUpdated:
		var data broadcast.ViewData
		if err := e.Decode(&data); err != nil {
			return errors.Wrap(err, "decode view_updated")
		}
		s.server.Views = data.Views
	case broadcast.EventReactionUpdated:
		var data broadcast.ReactionData
		if err := e.Decode(&data); err != nil {
			return errors.Wrap(err, "decode reaction_updated")
		}
		s.server.Likes = data.Likes
		s.server.Dislikes = data.Dislikes
	case broadcast.EventSubscriberUpdated:
		var data broadcast.SubscriberData
		if err := e.Decode(&data); err != nil {
			return errors.Wrap(err, "decode subscriber_updated")
		}
		s.server.Subscribers = data.Subscribers
	}
	return nil
}
