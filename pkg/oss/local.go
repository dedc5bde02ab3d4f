package oss

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// LocalStore 文件保存在本地目录, 由 api 进程以静态文件方式提供
type LocalStore struct {
	dir       string
	publicURL string
}

func NewLocalStore(dir, publicURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, errors.WithMessage(err, "Failed to create upload folder")
	}
	return &LocalStore{dir: dir, publicURL: publicURL}, nil
}

func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Put(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	dst := filepath.Join(s.dir, filepath.FromSlash(cleanObject(objectName)))
	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return "", errors.WithMessage(err, "Failed to create folders")
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", errors.WithMessage(err, "Failed to create file")
	}
	defer f.Close()
	if _, err = io.Copy(f, reader); err != nil {
		return "", errors.WithMessage(err, "Failed to write file")
	}
	return joinURL(s.publicURL, objectName), nil
}

func (s *LocalStore) Remove(_ context.Context, objectName string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(cleanObject(objectName))))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	hlog.Infof("Removed local object %s", objectName)
	return nil
}

func (s *LocalStore) ObjectName(url string) (string, bool) {
	return trimURL(s.publicURL, url)
}
