package handlers

import (
	"context"

	"VidHub.com/cmd/api/rpc"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

// GetUserInfo 频道主页
func GetUserInfo(ctx context.Context, c *app.RequestContext) {
	userId, err := userIdParam(c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	channel, err := rpc.GetUserInfo(ctx, userId)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, channel)
}

func GetUserVideos(ctx context.Context, c *app.RequestContext) {
	userId, err := userIdParam(c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	videos, err := rpc.ListUserVideos(ctx, userId)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, videos)
}
