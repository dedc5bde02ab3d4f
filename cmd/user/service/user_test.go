package service

import (
	"context"
	"testing"

	"VidHub.com/cmd/model"
	"VidHub.com/cmd/user/dal/db"
	"VidHub.com/pkg/database/databasetest"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserLifecycle(t *testing.T) {
	utils.BcryptCost = bcrypt.MinCost
	db.Init(databasetest.Open(t))
	ctx := context.Background()

	var userId int64
	t.Run("register", func(t *testing.T) {
		user, err := NewCreateUserService(ctx).CreateUser(&model.RegisterRequest{
			Name: "Alice", Email: " Alice@Example.com ", Password: "secret123",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotEqual(t, "secret123", user.Password)
		userId = user.UserId
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := NewCreateUserService(ctx).CreateUser(&model.RegisterRequest{
			Name: "Alice2", Email: "alice@example.com", Password: "secret123",
		})
		assert.Equal(t, errno.UserAlreadyExistErr, err)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := NewCreateUserService(ctx).CreateUser(&model.RegisterRequest{
			Name: "Bob", Email: "bob", Password: "123",
		})
		assert.Equal(t, int64(errno.ParamErrCode), errno.ConvertErr(err).ErrCode)
	})

	t.Run("login", func(t *testing.T) {
		user, err := NewLoginUserService(ctx).LoginUser(&model.LoginRequest{Email: "ALICE@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, userId, user.UserId)

		_, err = NewLoginUserService(ctx).LoginUser(&model.LoginRequest{Email: "alice@example.com", Password: "wrong"})
		assert.Equal(t, errno.AuthorizationFailedErr, err)

		_, err = NewLoginUserService(ctx).LoginUser(&model.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
		assert.Equal(t, errno.AuthorizationFailedErr, err)
	})

	t.Run("profile", func(t *testing.T) {
		channel, err := NewGetUserInfoService(ctx).GetUserInfo(userId)
		require.NoError(t, err)
		assert.Equal(t, "Alice", channel.Name)
		assert.Equal(t, int64(0), channel.Subscribers)

		_, err = NewGetUserInfoService(ctx).GetUserInfo(404)
		assert.Equal(t, errno.UserNotFoundErr, err)
	})
}
