package handlers

import (
	"context"
	"mime/multipart"
	"strconv"

	"VidHub.com/cmd/api/rpc"
	"VidHub.com/cmd/model"
	jwt "VidHub.com/pkg"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// UploadVideo multipart 上传, 封面可选
func UploadVideo(ctx context.Context, c *app.RequestContext) {
	userId, err := jwt.GetUserId(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var req model.UploadVideoRequest
	if err = c.BindAndValidate(&req); err != nil {
		hlog.CtxInfof(ctx, "bind upload request failed: %v", err)
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	videoFile, err := c.FormFile(constants.VideoFormField)
	if err != nil {
		SendResponse(c, errno.ParamErr.WithMessage("Video file is required"), nil)
		return
	}
	if videoFile.Size > MaxUploadSize {
		SendResponse(c, errno.UploadErr.WithMessage("Video file is too large"), nil)
		return
	}
	var thumbFile *multipart.FileHeader
	if fh, err := c.FormFile(constants.ThumbnailFormField); err == nil {
		thumbFile = fh
	}

	video, err := rpc.UploadVideo(ctx, userId, &req, videoFile, thumbFile)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, video)
}

// DeleteVideo 只有作者可以删除
func DeleteVideo(ctx context.Context, c *app.RequestContext) {
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
	if err = rpc.DeleteVideo(ctx, userId, videoId); err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, map[string]string{"video_id": strconv.FormatInt(videoId, 10)})
}
