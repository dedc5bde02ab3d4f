package broadcast

import (
	"context"
	"encoding/json"
	"strconv"

	"VidHub.com/pkg/constants"
	"github.com/pkg/errors"
)

const (
	EventViewUpdated       = "view_updated"
	EventReactionUpdated   = "reaction_updated"
	EventSubscriberUpdated = "subscriber_updated"

	// 客户端发往服务端
	EventJoinVideo  = "join_video"
	EventLeaveVideo = "leave_video"
)

// Event 推送给房间内客户端的信封, data 总是绝对值而不是增量
type Event struct {
	Event   string          `json:"event"`
	VideoId int64           `json:"video_id,string"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type ViewData struct {
	Views int64 `json:"views"`
}

type ReactionData struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

type SubscriberData struct {
	Subscribers int64 `json:"subscribers"`
}

// ClientMessage 客户端发来的 join_video / leave_video, video_id 可以是数字或字符串
type ClientMessage struct {
	Event   string      `json:"event"`
	VideoId json.Number `json:"video_id"`
}

func (m *ClientMessage) VideoID() (int64, error) {
	return strconv.ParseInt(m.VideoId.String(), 10, 64)
}

func RoomTopic(videoID int64) string {
	return constants.VideoRoomPrefix + strconv.FormatInt(videoID, 10)
}

func NewEvent(name string, videoID int64, data interface{}) (*Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %s data", name)
	}
	return &Event{Event: name, VideoId: videoID, Data: raw}, nil
}

func (e *Event) Decode(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

func ParseEvent(payload []byte) (*Event, error) {
	e := &Event{}
	if err := json.Unmarshal(payload, e); err != nil {
		return nil, errors.Wrap(err, "unmarshal event")
	}
	return e, nil
}

// PublishEvent 序列化后发布到视频所在的房间
func PublishEvent(ctx context.Context, bus Bus, name string, videoID int64, data interface{}) error {
	e, err := NewEvent(name, videoID, data)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	return bus.Publish(ctx, RoomTopic(videoID), payload)
}
