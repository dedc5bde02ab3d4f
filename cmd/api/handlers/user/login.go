package handlers

import (
	"context"

	jwt "VidHub.com/pkg"
	"github.com/cloudwego/hertz/pkg/app"
)

// LoginUser 校验和签发都由 jwt 中间件完成
func LoginUser(ctx context.Context, c *app.RequestContext) {
	jwt.AccessTokenJwtMiddleware.LoginHandler(ctx, c)
}

func RefreshToken(ctx context.Context, c *app.RequestContext) {
	jwt.AccessTokenJwtMiddleware.RefreshHandler(ctx, c)
}
