package rpc

import (
	"context"

	"VidHub.com/cmd/model"
	"VidHub.com/cmd/user/service"
)

func CreateUser(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	return service.NewCreateUserService(ctx).CreateUser(req)
}

func GetUserInfo(ctx context.Context, userId int64) (*model.Channel, error) {
	return service.NewGetUserInfoService(ctx).GetUserInfo(userId)
}
