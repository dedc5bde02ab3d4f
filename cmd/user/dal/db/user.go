package db

import (
	"context"

	"VidHub.com/cmd/model"
	"github.com/pkg/errors"
)

func CreateUser(ctx context.Context, user *model.User) error {
	if err := DB.WithContext(ctx).Create(user).Error; err != nil {
		return errors.Wrapf(err, "CreateUser failed,email: %s", user.Email)
	}
	return nil
}

// CheckEmailExists 注册前检查邮箱是否已被使用, 最终以唯一索引为准
func CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "查询邮箱存在性失败")
	}
	return count > 0, nil
}

func GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	if err := DB.WithContext(ctx).Where("email = ?", email).Take(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func GetUser(ctx context.Context, userId int64) (*model.User, error) {
	user := &model.User{}
	if err := DB.WithContext(ctx).Where("user_id = ?", userId).Take(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
