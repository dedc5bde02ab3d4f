package client

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type route func(req *protocol.Request) (int, errno.ErrNo, interface{})

// fakeServer 按 "METHOD path" 返回固定的响应
type fakeServer struct {
	routes map[string]route
	auth   []string
	down   bool
}

func (f *fakeServer) Do(_ context.Context, req *protocol.Request, resp *protocol.Response) error {
	if f.down {
		return errors.New("connection refused")
	}
	f.auth = append(f.auth, string(req.Header.Peek(consts.HeaderAuthorization)))
	key := string(req.Method()) + " " + string(req.URI().Path())
	h, ok := f.routes[key]
	if !ok {
		resp.SetStatusCode(consts.StatusNotFound)
		resp.SetBodyString(`{"code":10006,"message":"Resource not found","data":null}`)
		return nil
	}
	status, Err, data := h(req)
	raw, _ := json.Marshal(map[string]interface{}{"code": Err.ErrCode, "message": Err.ErrMsg, "data": data})
	resp.SetStatusCode(status)
	resp.SetBody(raw)
	return nil
}

func ok(data interface{}) route {
	return func(*protocol.Request) (int, errno.ErrNo, interface{}) {
		return consts.StatusOK, errno.Success, data
	}
}

func newFake() *fakeServer {
	return &fakeServer{routes: map[string]route{
		"POST /api/auth/login": ok(&model.AuthResponse{Token: "tok", User: &model.Channel{UserId: 2}}),
		"GET /api/videos/7": ok(&model.Video{
			VideoId: 7, Views: 10, Likes: 3, Dislikes: 1, User: &model.User{UserId: 1, Subscribers: 5},
		}),
		"GET /api/videos/7/subscription-status": ok(&model.SubscriptionState{Subscribers: 5, IsSubscribed: true, ChannelId: 1}),
		"POST /api/videos/7/view":               ok(&model.Video{VideoId: 7, Views: 11, Likes: 3, Dislikes: 1}),
		"POST /api/videos/7/react": func(req *protocol.Request) (int, errno.ErrNo, interface{}) {
			var body model.ReactRequest
			_ = json.Unmarshal(req.Body(), &body)
			if body.Type != "like" {
				return consts.StatusBadRequest, errno.ReactionTypeErr, nil
			}
			return consts.StatusOK, errno.Success, &model.ReactionCounts{Likes: 8, Dislikes: 1, Reaction: "like"}
		},
		"POST /api/videos/7/subscribe": ok(&model.SubscriptionState{Subscribers: 4, IsSubscribed: false, ChannelId: 1}),
	}}
}

func TestWatchAndEngage(t *testing.T) {
	fake := newFake()
	c := NewWithDoer("http://vidhub.local/", fake)
	ctx := context.Background()

	auth, err := c.Login(ctx, &model.LoginRequest{Email: "a@b.c", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "tok", c.Token())
	assert.Equal(t, int64(2), auth.User.UserId)

	st, err := c.Watch(ctx, 7)
	require.NoError(t, err)
	snap := st.Snapshot()
	assert.Equal(t, int64(10), snap.Views)
	assert.Equal(t, int64(5), snap.Subscribers)
	assert.True(t, snap.Subscribed)

	require.NoError(t, c.View(ctx, st))
	assert.Equal(t, int64(11), st.Snapshot().Views)

	require.NoError(t, c.React(ctx, st, "like"))
	snap = st.Snapshot()
	assert.Equal(t, int64(8), snap.Likes)
	assert.Equal(t, "like", snap.Reaction)

	require.NoError(t, c.ToggleSubscription(ctx, st))
	snap = st.Snapshot()
	assert.False(t, snap.Subscribed)
	assert.Equal(t, int64(4), snap.Subscribers)
	assert.Equal(t, 0, st.Pending())

	assert.Equal(t, "Bearer tok", fake.auth[len(fake.auth)-1])
}

func TestFailedMutationRollsBack(t *testing.T) {
	fake := newFake()
	c := NewWithDoer("http://vidhub.local", fake)
	c.SetToken("tok")
	ctx := context.Background()

	st, err := c.Watch(ctx, 7)
	require.NoError(t, err)
	before := st.Snapshot()

	err = c.React(ctx, st, "love")
	require.Error(t, err)
	assert.Equal(t, int64(errno.InvalidOperationErrCode), errno.ConvertErr(err).ErrCode)
	assert.Equal(t, before, st.Snapshot())

	fake.down = true
	err = c.ToggleSubscription(ctx, st)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "connection refused"))
	assert.Equal(t, before, st.Snapshot())
	assert.Equal(t, 0, st.Pending())
}

func TestAnonymousSubscriptionStatus(t *testing.T) {
	fake := newFake()
	fake.routes["GET /api/videos/7/subscription-status"] = ok(nil)
	c := NewWithDoer("http://vidhub.local", fake)

	state, err := c.SubscriptionStatus(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, state)

	_, err = c.GetVideo(context.Background(), 404)
	assert.Equal(t, int64(errno.NotFoundErrCode), errno.ConvertErr(err).ErrCode)
}

func TestWatchStartsFromOwnReaction(t *testing.T) {
	fake := newFake()
	fake.routes["GET /api/videos/7"] = ok(&model.Video{VideoId: 7, Views: 10, Likes: 3, Dislikes: 1, Reaction: "like", Viewed: true})
	c := NewWithDoer("http://vidhub.local", fake)
	c.SetToken("tok")
	ctx := context.Background()

	st, err := c.Watch(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "like", st.Snapshot().Reaction)

	var during model.ReactionCounts
	fake.routes["POST /api/videos/7/react"] = func(*protocol.Request) (int, errno.ErrNo, interface{}) {
		snap := st.Snapshot()
		during = model.ReactionCounts{Likes: snap.Likes, Dislikes: snap.Dislikes, Reaction: snap.Reaction}
		return consts.StatusOK, errno.Success, &model.ReactionCounts{Likes: 2, Dislikes: 1}
	}
	require.NoError(t, c.React(ctx, st, "like"))
	assert.Equal(t, model.ReactionCounts{Likes: 2, Dislikes: 1}, during)
	assert.Equal(t, "", st.Snapshot().Reaction)
	assert.Equal(t, int64(2), st.Snapshot().Likes)
}
