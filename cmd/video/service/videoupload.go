package service

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"VidHub.com/cmd/model"
	"VidHub.com/cmd/video/dal/db"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/oss"
	"VidHub.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// Thumbnailer 从视频截取封面, 默认使用 ffmpeg
var Thumbnailer = utils.GetVideoThumnail

type VideoUploadService struct {
	ctx   context.Context
	store oss.MediaStore
}

func NewVideoUploadService(ctx context.Context, store oss.MediaStore) *VideoUploadService {
	return &VideoUploadService{
		ctx:   ctx,
		store: store,
	}
}

// UploadVideo 保存视频文件和封面后写入数据库, 没有上传封面时尝试截取第一帧
func (service *VideoUploadService) UploadVideo(userId int64, req *model.UploadVideoRequest, videoFile, thumbFile *multipart.FileHeader) (*model.Video, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errno.ParamErr.WithMessage("Title is required")
	}
	if videoFile == nil {
		return nil, errno.ParamErr.WithMessage("Video file is required")
	}
	if ct := videoFile.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "video/") && ct != "application/octet-stream" {
		return nil, errno.ParamErr.WithMessage("Only video files are allowed")
	}

	videoId := utils.GenerateVideoID()
	uploaded := make([]string, 0, 2)
	cleanup := func() {
		for _, name := range uploaded {
			if err := service.store.Remove(service.ctx, name); err != nil {
				hlog.CtxWarnf(service.ctx, "cleanup object %s failed: %v", name, err)
			}
		}
	}

	tempDir, err := os.MkdirTemp("", "vidhub_upload_")
	if err != nil {
		return nil, errors.WithMessage(err, "Failed to create temp folder")
	}
	defer os.RemoveAll(tempDir)

	ext := strings.ToLower(filepath.Ext(videoFile.Filename))
	if ext == "" {
		ext = ".mp4"
	}
	tempVideo := filepath.Join(tempDir, "video"+ext)
	if err = saveMultipart(videoFile, tempVideo); err != nil {
		return nil, errno.UploadErr
	}

	videoName := oss.VideoObjectName(userId, videoId, ext)
	videoUrl, err := putFile(service.ctx, service.store, videoName, tempVideo, contentType(videoFile, "video/mp4"))
	if err != nil {
		hlog.CtxErrorf(service.ctx, "store video failed: %v", err)
		return nil, errno.UploadErr
	}
	uploaded = append(uploaded, videoName)

	thumbnailUrl, thumbName, err := service.storeThumbnail(userId, videoId, tempVideo, tempDir, thumbFile)
	if err != nil {
		cleanup()
		hlog.CtxErrorf(service.ctx, "store thumbnail failed: %v", err)
		return nil, errno.UploadErr
	}
	if thumbName != "" {
		uploaded = append(uploaded, thumbName)
	}

	video := &model.Video{
		VideoId:      videoId,
		UserId:       userId,
		Title:        title,
		Description:  strings.TrimSpace(req.Description),
		VideoUrl:     videoUrl,
		ThumbnailUrl: thumbnailUrl,
	}
	if err = db.CreateVideo(service.ctx, video); err != nil {
		cleanup()
		return nil, errors.WithMessage(err, "dao.CreateVideo failed")
	}
	hlog.CtxInfof(service.ctx, "user %d uploaded video %d", userId, videoId)
	return db.GetVideo(service.ctx, videoId)
}

// storeThumbnail 封面缺失不影响上传
func (service *VideoUploadService) storeThumbnail(userId, videoId int64, videoPath, tempDir string, thumbFile *multipart.FileHeader) (string, string, error) {
	if thumbFile != nil {
		ext := strings.ToLower(filepath.Ext(thumbFile.Filename))
		if ext == "" {
			ext = ".jpg"
		}
		src, err := thumbFile.Open()
		if err != nil {
			return "", "", err
		}
		defer src.Close()
		name := oss.ThumbnailObjectName(userId, videoId, ext)
		url, err := service.store.Put(service.ctx, name, src, thumbFile.Size, contentType(thumbFile, "image/jpeg"))
		if err != nil {
			return "", "", err
		}
		return url, name, nil
	}

	thumbPath, err := Thumbnailer(videoPath, filepath.Join(tempDir, "thumbnail"))
	if err != nil {
		hlog.CtxWarnf(service.ctx, "generate thumbnail for video %d failed: %v", videoId, err)
		return "", "", nil
	}
	name := oss.ThumbnailObjectName(userId, videoId, ".jpg")
	url, err := putFile(service.ctx, service.store, name, thumbPath, "image/jpeg")
	if err != nil {
		return "", "", err
	}
	return url, name, nil
}

func contentType(fh *multipart.FileHeader, fallback string) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return fallback
}

func saveMultipart(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, src)
	return err
}

func putFile(ctx context.Context, store oss.MediaStore, name, path, ct string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	return store.Put(ctx, name, f, info.Size(), ct)
}
