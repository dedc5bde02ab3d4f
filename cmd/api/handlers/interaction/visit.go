package handlers

import (
	"context"

	"VidHub.com/cmd/api/rpc"
	jwt "VidHub.com/pkg"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

// VideoVisit 同一用户重复观看不会增加计数
func VideoVisit(ctx context.Context, c *app.RequestContext) {
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
	video, err := rpc.RecordView(ctx, userId, videoId)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, video)
}
