package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"

	"VidHub.com/cmd/model"
	"VidHub.com/cmd/video/dal/db"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/database/databasetest"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/oss"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader 构造一个 multipart 文件, 与 hertz 解析表单后得到的一致
func fileHeader(t *testing.T, field, filename, ct string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", ct)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field][0]
}

type fixture struct {
	ctx   context.Context
	store *oss.LocalStore
	owner *model.User
	other *model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db.Init(databasetest.Open(t))
	store, err := oss.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	Thumbnailer = func(string, string) (string, error) {
		return "", errors.New("ffmpeg not installed")
	}

	f := &fixture{
		ctx:   context.Background(),
		store: store,
		owner: &model.User{Name: "owner", Email: "owner@example.com", Password: "x"},
		other: &model.User{Name: "other", Email: "other@example.com", Password: "x"},
	}
	require.NoError(t, db.DB.Create(f.owner).Error)
	require.NoError(t, db.DB.Create(f.other).Error)
	return f
}

func (f *fixture) upload(t *testing.T, title string) *model.Video {
	t.Helper()
	video, err := NewVideoUploadService(f.ctx, f.store).UploadVideo(f.owner.UserId,
		&model.UploadVideoRequest{Title: title, Description: "desc"},
		fileHeader(t, constants.VideoFormField, "clip.mp4", "video/mp4", []byte("fake video")),
		nil,
	)
	require.NoError(t, err)
	return video
}

func TestUploadVideo(t *testing.T) {
	f := newFixture(t)

	video := f.upload(t, "first")
	assert.NotZero(t, video.VideoId)
	assert.Equal(t, "first", video.Title)
	assert.Contains(t, video.VideoUrl, "/uploads/users/")
	assert.Empty(t, video.ThumbnailUrl)
	require.NotNil(t, video.User)
	assert.Equal(t, f.owner.Name, video.User.Name)

	withThumb, err := NewVideoUploadService(f.ctx, f.store).UploadVideo(f.owner.UserId,
		&model.UploadVideoRequest{Title: "second"},
		fileHeader(t, constants.VideoFormField, "clip.mp4", "video/mp4", []byte("fake video")),
		fileHeader(t, constants.ThumbnailFormField, "cover.png", "image/png", []byte("png")),
	)
	require.NoError(t, err)
	assert.Contains(t, withThumb.ThumbnailUrl, "thumbnail.png")

	_, err = NewVideoUploadService(f.ctx, f.store).UploadVideo(f.owner.UserId,
		&model.UploadVideoRequest{Title: "  "},
		fileHeader(t, constants.VideoFormField, "clip.mp4", "video/mp4", []byte("x")), nil)
	assert.Equal(t, int64(errno.ParamErrCode), errno.ConvertErr(err).ErrCode)

	_, err = NewVideoUploadService(f.ctx, f.store).UploadVideo(f.owner.UserId,
		&model.UploadVideoRequest{Title: "doc"},
		fileHeader(t, constants.VideoFormField, "doc.pdf", "application/pdf", []byte("x")), nil)
	assert.Equal(t, int64(errno.ParamErrCode), errno.ConvertErr(err).ErrCode)
}

func TestListAndDashboard(t *testing.T) {
	f := newFixture(t)
	first := f.upload(t, "first")
	second := f.upload(t, "second")
	require.NoError(t, db.DB.Model(&model.Video{}).Where("video_id = ?", first.VideoId).
		UpdateColumns(map[string]interface{}{"views": 10, "likes": 3}).Error)
	require.NoError(t, db.DB.Model(&model.Video{}).Where("video_id = ?", second.VideoId).
		UpdateColumns(map[string]interface{}{"views": 5, "likes": 1}).Error)

	videos, total, err := NewVideoListService(f.ctx).ListVideos(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, videos, 2)

	stats, err := NewVideoListService(f.ctx).Dashboard(f.owner.UserId)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalVideos)
	assert.Equal(t, int64(15), stats.TotalViews)
	assert.Equal(t, int64(4), stats.TotalLikes)

	// Redis 未加载时回退到数据库排序
	popular, err := NewPopularVideoService(f.ctx).Popular(1)
	require.NoError(t, err)
	require.Len(t, popular, 1)
	assert.Equal(t, first.VideoId, popular[0].VideoId)

	mine, err := NewVideoListService(f.ctx).ListUserVideos(f.owner.UserId)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	_, err = NewVideoListService(f.ctx).ListUserVideos(404)
	assert.Equal(t, errno.UserNotFoundErr, err)

	_, err = NewVideoListService(f.ctx).GetVideo(0, 404)
	assert.Equal(t, errno.VideoNotFoundErr, err)
}

func TestDeleteVideoCascade(t *testing.T) {
	f := newFixture(t)
	video := f.upload(t, "to delete")
	keep := f.upload(t, "to keep")

	require.NoError(t, db.DB.Create(&model.View{UserId: f.other.UserId, VideoId: video.VideoId}).Error)
	require.NoError(t, db.DB.Create(&model.Reaction{UserId: f.other.UserId, VideoId: video.VideoId, Type: constants.ReactionLike}).Error)
	require.NoError(t, db.DB.Create(&model.View{UserId: f.other.UserId, VideoId: keep.VideoId}).Error)
	require.NoError(t, db.DB.Create(&model.Subscription{SubscriberId: f.other.UserId, ChannelId: f.owner.UserId}).Error)

	err := NewDeleteVideoService(f.ctx, f.store).DeleteVideo(f.other.UserId, video.VideoId)
	assert.Equal(t, errno.NotVideoOwnerErr, err)

	require.NoError(t, NewDeleteVideoService(f.ctx, f.store).DeleteVideo(f.owner.UserId, video.VideoId))

	var n int64
	require.NoError(t, db.DB.Model(&model.View{}).Where("video_id = ?", video.VideoId).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.DB.Model(&model.Reaction{}).Where("video_id = ?", video.VideoId).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.DB.Model(&model.View{}).Where("video_id = ?", keep.VideoId).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	require.NoError(t, db.DB.Model(&model.Subscription{}).Where("channel_id = ?", f.owner.UserId).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	err = NewDeleteVideoService(f.ctx, f.store).DeleteVideo(f.owner.UserId, video.VideoId)
	assert.Equal(t, errno.VideoNotFoundErr, err)
}
