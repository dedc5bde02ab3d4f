package handlers

import (
	"context"

	"VidHub.com/cmd/api/rpc"
	"VidHub.com/cmd/model"
	jwt "VidHub.com/pkg"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// LikeAction 再次提交相同的类型会取消反应
func LikeAction(ctx context.Context, c *app.RequestContext) {
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
	var req model.ReactRequest
	if err = c.BindAndValidate(&req); err != nil {
		hlog.CtxInfof(ctx, "bind react request failed: %v", err)
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	counts, err := rpc.SetReaction(ctx, userId, videoId, req.Type)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, counts)
}
