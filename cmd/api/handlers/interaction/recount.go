package handlers

import (
	"context"

	"VidHub.com/cmd/api/rpc"
	jwt "VidHub.com/pkg"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

// RecountVideo 作者按明细表重算计数
func RecountVideo(ctx context.Context, c *app.RequestContext) {
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
	video, err := rpc.RecountVideo(ctx, userId, videoId)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, video)
}
