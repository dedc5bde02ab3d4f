package handlers

import (
	"context"
	"time"

	"VidHub.com/cmd/api/rpc"
	"VidHub.com/cmd/model"
	jwt "VidHub.com/pkg"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func Register(ctx context.Context, c *app.RequestContext) {
	var req model.RegisterRequest
	if err := c.BindAndValidate(&req); err != nil {
		hlog.CtxInfof(ctx, "bind register request failed: %v", err)
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	user, err := rpc.CreateUser(ctx, &req)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	token, expire, err := jwt.GenerateToken(user.UserId)
	if err != nil {
		hlog.CtxErrorf(ctx, "generate token for user %d failed: %v", user.UserId, err)
		SendResponse(c, errno.ServiceErr, nil)
		return
	}
	SendResponse(c, errno.Success, &model.AuthResponse{
		Token:  token,
		Expire: expire.Format(time.RFC3339),
		User:   user.ToChannel(),
	})
}
