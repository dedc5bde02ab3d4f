// Package client 基于 Hertz client 的 HTTP SDK, 互动操作会同步更新 watch.State
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/watch"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/pkg/errors"
)

// Doer 由 *client.Client 实现
type Doer interface {
	Do(ctx context.Context, req *protocol.Request, resp *protocol.Response) error
}

type Client struct {
	doer    Doer
	baseURL string
	token   string
}

type envelope struct {
	Code    int64           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func New(baseURL string, opts ...config.ClientOption) (*Client, error) {
	c, err := client.NewClient(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "new hertz client")
	}
	return NewWithDoer(baseURL, c), nil
}

func NewWithDoer(baseURL string, doer Doer) *Client {
	return &Client{
		doer:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	req.Header.SetContentTypeBytes([]byte(consts.MIMEApplicationJSON))
	if c.token != "" {
		req.Header.Set(consts.HeaderAuthorization, "Bearer "+c.token)
	}
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal request")
		}
		req.SetBody(raw)
	}

	if err := c.doer.Do(ctx, req, resp); err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}

	env := &envelope{}
	if err := json.Unmarshal(resp.Body(), env); err != nil {
		return errors.Wrapf(err, "%s %s: status %d", method, path, resp.StatusCode())
	}
	if env.Code != errno.SuccessCode {
		return errno.NewErrNo(env.Code, env.Message)
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	return errors.Wrap(json.Unmarshal(env.Data, out), "unmarshal data")
}

func (c *Client) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	resp := &model.AuthResponse{}
	if err := c.do(ctx, consts.MethodPost, "/api/auth/register", req, resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return resp, nil
}

func (c *Client) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	resp := &model.AuthResponse{}
	if err := c.do(ctx, consts.MethodPost, "/api/auth/login", req, resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return resp, nil
}

func (c *Client) GetVideo(ctx context.Context, videoId int64) (*model.Video, error) {
	video := &model.Video{}
	if err := c.do(ctx, consts.MethodGet, fmt.Sprintf("/api/videos/%d", videoId), nil, video); err != nil {
		return nil, err
	}
	return video, nil
}

// SubscriptionStatus 未登录时返回 nil
func (c *Client) SubscriptionStatus(ctx context.Context, videoId int64) (*model.SubscriptionState, error) {
	var state *model.SubscriptionState
	if err := c.do(ctx, consts.MethodGet, fmt.Sprintf("/api/videos/%d/subscription-status", videoId), nil, &state); err != nil {
		return nil, err
	}
	return state, nil
}

// Watch 读取视频详情和订阅状态, 返回初始化好的观看状态
func (c *Client) Watch(ctx context.Context, videoId int64) (*watch.State, error) {
	video, err := c.GetVideo(ctx, videoId)
	if err != nil {
		return nil, err
	}
	st := watch.New(videoId)
	st.Load(video)
	if c.token == "" {
		return st, nil
	}
	state, err := c.SubscriptionStatus(ctx, videoId)
	if err != nil {
		return nil, err
	}
	if state != nil {
		st.ApplySubscription(state)
	}
	return st, nil
}

func (c *Client) View(ctx context.Context, st *watch.State) error {
	t := st.BeginView()
	video := &model.Video{}
	if err := c.do(ctx, consts.MethodPost, fmt.Sprintf("/api/videos/%d/view", st.VideoId()), nil, video); err != nil {
		st.Fail(t)
		return err
	}
	st.ConfirmView(t, video)
	return nil
}

// React 失败时回滚乐观修改
func (c *Client) React(ctx context.Context, st *watch.State, reactionType string) error {
	t := st.BeginReaction(reactionType)
	counts := &model.ReactionCounts{}
	err := c.do(ctx, consts.MethodPost, fmt.Sprintf("/api/videos/%d/react", st.VideoId()), &model.ReactRequest{Type: reactionType}, counts)
	if err != nil {
		st.Fail(t)
		return err
	}
	st.ConfirmReaction(t, counts)
	return nil
}

func (c *Client) ToggleSubscription(ctx context.Context, st *watch.State) error {
	t := st.BeginSubscription()
	state := &model.SubscriptionState{}
	if err := c.do(ctx, consts.MethodPost, fmt.Sprintf("/api/videos/%d/subscribe", st.VideoId()), nil, state); err != nil {
		st.Fail(t)
		return err
	}
	st.ConfirmSubscription(t, state)
	return nil
}
