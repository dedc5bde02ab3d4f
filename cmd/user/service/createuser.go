package service

import (
	"context"
	"strings"

	"VidHub.com/cmd/model"
	"VidHub.com/cmd/user/dal/db"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const minPasswordLen = 6

type CreateUserService struct {
	ctx context.Context
}

func NewCreateUserService(ctx context.Context) *CreateUserService {
	return &CreateUserService{ctx: ctx}
}

func (v *CreateUserService) CreateUser(req *model.RegisterRequest) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	email := utils.NormalizeEmail(req.Email)
	if name == "" || !utils.IsValidEmail(email) || len(req.Password) < minPasswordLen {
		return nil, errno.ParamErr.WithMessage("Name, valid email and a password of at least 6 characters are required")
	}

	exists, err := db.CheckEmailExists(v.ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errno.UserAlreadyExistErr
	}

	passWord, err := utils.Crypt(req.Password)
	if err != nil {
		return nil, errors.WithMessage(err, "Password fail to crypt")
	}
	user := &model.User{
		Name:     name,
		Email:    email,
		Password: passWord,
	}
	if err = db.CreateUser(v.ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errno.UserAlreadyExistErr
		}
		return nil, errors.WithMessage(err, "dao.CreateUser failed")
	}
	hlog.CtxInfof(v.ctx, "user %d registered, email=%s", user.UserId, user.Email)
	return user, nil
}
