package handlers

import (
	"context"

	"VidHub.com/cmd/api/rpc"
	jwt "VidHub.com/pkg"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

func ListNotifications(ctx context.Context, c *app.RequestContext) {
	userId, err := jwt.GetUserId(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var param NotificationListParam
	if err = c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	list, err := rpc.ListNotifications(ctx, userId, param.Limit)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, list)
}
