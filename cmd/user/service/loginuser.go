package service

import (
	"context"

	"VidHub.com/cmd/model"
	"VidHub.com/cmd/user/dal/db"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type LoginUserService struct {
	ctx context.Context
}

func NewLoginUserService(ctx context.Context) *LoginUserService {
	return &LoginUserService{ctx: ctx}
}

// LoginUser 邮箱不存在和密码错误返回同一个错误
func (v *LoginUserService) LoginUser(req *model.LoginRequest) (*model.User, error) {
	user, err := db.GetUserByEmail(v.ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.AuthorizationFailedErr
		}
		return nil, errors.WithMessage(err, "dao.GetUserByEmail failed")
	}
	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, errno.AuthorizationFailedErr
	}
	return user, nil
}
