package oss

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
)

// MediaStore 接收上传的文件并返回可访问的地址
type MediaStore interface {
	Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, objectName string) error
	// ObjectName 把 Put 返回的地址还原为对象名, 不属于本存储时返回 false
	ObjectName(url string) (string, bool)
}

// 对象路径, 同一视频的文件放在一个目录下
func VideoObjectName(userID, videoID int64, ext string) string {
	return fmt.Sprintf("users/%d/videos/%d/video%s", userID, videoID, ext)
}

func ThumbnailObjectName(userID, videoID int64, ext string) string {
	return fmt.Sprintf("users/%d/videos/%d/thumbnail%s", userID, videoID, ext)
}

// cleanObject 去掉 .. 之类的路径片段
func cleanObject(objectName string) string {
	return strings.TrimLeft(path.Clean("/"+objectName), "/")
}

func joinURL(base, objectName string) string {
	return strings.TrimRight(base, "/") + "/" + cleanObject(objectName)
}

func trimURL(base, url string) (string, bool) {
	prefix := strings.TrimRight(base, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
