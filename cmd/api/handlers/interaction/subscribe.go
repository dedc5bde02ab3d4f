package handlers

import (
	"context"

	"VidHub.com/cmd/api/rpc"
	jwt "VidHub.com/pkg"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

// Subscribe 订阅或取消订阅视频作者的频道
func Subscribe(ctx context.Context, c *app.RequestContext) {
	userId, err := jwt.GetUserId(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	videoId, err := videoIdParam(c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	state, err := rpc.SetSubscription(ctx, userId, videoId)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, state)
}

// SubscriptionStatus 未登录时返回 data:null
func SubscriptionStatus(ctx context.Context, c *app.RequestContext) {
	videoId, err := videoIdParam(c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	userId, ok := jwt.OptionalUserId(ctx, c)
	if !ok {
		SendResponse(c, errno.Success, nil)
		return
	}
	state, err := rpc.GetSubscriptionStatus(ctx, userId, videoId)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, state)
}
