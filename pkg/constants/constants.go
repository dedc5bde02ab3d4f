package constants

const (
	DataFormate = "2006-01-02 15:04:05"

	DefaultLimit = 20
	MaxLimit     = 100

	// 观看页面的房间名 video_<id>
	VideoRoomPrefix = "video_"

	ReactionLike    = "like"
	ReactionDislike = "dislike"

	// Redis 中按播放量排序的有序集合
	VisitRankKey = "visit"

	IdentityKey = "user_id"

	// 上传文件的表单字段
	VideoFormField     = "video"
	ThumbnailFormField = "thumbnail"
)
