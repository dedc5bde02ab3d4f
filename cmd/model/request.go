package model

// RegisterRequest 注册
type RegisterRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginRequest 登录
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// ReactRequest 点赞或点踩
type ReactRequest struct {
	Type string `json:"type" form:"type"`
}

// UploadVideoRequest 上传视频的文本字段, 文件通过 multipart 读取
type UploadVideoRequest struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
}

// ListRequest 分页参数
type ListRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// AuthResponse 注册和登录成功后返回
type AuthResponse struct {
	Token  string   `json:"token"`
	Expire string   `json:"expire,omitempty"`
	User   *Channel `json:"user"`
}
