package service

import (
	"context"

	"VidHub.com/cmd/model"
	"VidHub.com/cmd/user/dal/db"
	"VidHub.com/pkg/errno"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type GetUserInfoService struct {
	ctx context.Context
}

func NewGetUserInfoService(ctx context.Context) *GetUserInfoService {
	return &GetUserInfoService{ctx: ctx}
}

// GetUserInfo 频道主页, 包含订阅数
func (v *GetUserInfoService) GetUserInfo(userId int64) (*model.Channel, error) {
	user, err := db.GetUser(v.ctx, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.UserNotFoundErr
		}
		return nil, errors.WithMessage(err, "dao.GetUser failed")
	}
	return user.ToChannel(), nil
}
