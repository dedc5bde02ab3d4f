package oss

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads/")
	require.NoError(t, err)

	name := VideoObjectName(1, 2, ".mp4")
	url, err := store.Put(ctx, name, strings.NewReader("data"), 4, "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/users/1/videos/2/video.mp4", url)

	content, err := os.ReadFile(filepath.Join(dir, "users", "1", "videos", "2", "video.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))

	got, ok := store.ObjectName(url)
	require.True(t, ok)
	assert.Equal(t, name, got)
	_, ok = store.ObjectName("https://cdn.example.com/x.mp4")
	assert.False(t, ok)

	require.NoError(t, store.Remove(ctx, name))
	require.NoError(t, store.Remove(ctx, name))
	_, err = os.Stat(filepath.Join(dir, "users", "1", "videos", "2", "video.mp4"))
	assert.True(t, os.IsNotExist(err))
}

func TestJoinURLCleansPath(t *testing.T) {
	assert.Equal(t, "/uploads/a/b.mp4", joinURL("/uploads", "../a/b.mp4"))
	assert.Equal(t, "http://minio:9000/vidhub/a.jpg", joinURL("http://minio:9000/vidhub/", "a.jpg"))
}
