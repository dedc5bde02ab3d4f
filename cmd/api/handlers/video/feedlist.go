package handlers

import (
	"context"

	"VidHub.com/cmd/api/rpc"
	"VidHub.com/cmd/model"
	jwt "VidHub.com/pkg"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// ListVideos 首页视频流, 最新的在前
func ListVideos(ctx context.Context, c *app.RequestContext) {
	var req model.ListRequest
	if err := c.BindAndValidate(&req); err != nil {
		hlog.CtxInfof(ctx, "bind list request failed: %v", err)
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	videos, total, err := rpc.ListVideos(ctx, req.Page, req.Limit)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > constants.MaxLimit {
		limit = constants.DefaultLimit
	}
	SendResponse(c, errno.Success, &VideoListResponse{
		Videos: videos,
		Total:  total,
		Page:   page,
		Limit:  limit,
	})
}

// PopularVideos 按观看数排序
func PopularVideos(ctx context.Context, c *app.RequestContext) {
	var req model.ListRequest
	if err := c.BindAndValidate(&req); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	videos, err := rpc.PopularVideos(ctx, req.Limit)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, videos)
}

// GetVideo 携带令牌时返回的详情包含自己的反应
func GetVideo(ctx context.Context, c *app.RequestContext) {
	videoId, err := videoIdParam(c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	viewerId, _ := jwt.OptionalUserId(ctx, c)
	video, err := rpc.GetVideo(ctx, viewerId, videoId)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, video)
}
