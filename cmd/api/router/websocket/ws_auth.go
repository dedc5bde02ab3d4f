package websocket

import (
	"context"

	jwt "VidHub.com/pkg"
	"github.com/cloudwego/hertz/pkg/app"
)

func _wsAuth() []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		tokenAuthFunc(),
	)
}

// tokenAuthFunc 只有携带了令牌但令牌无效时才拒绝, 匿名观看者可以直接连接
func tokenAuthFunc() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		hasToken := len(c.Query("token")) > 0 || len(c.GetHeader("Authorization")) > 0
		if _, ok := jwt.OptionalUserId(ctx, c); hasToken && !ok {
			c.AbortWithStatus(401)
			return
		}
		c.Next(ctx)
	}
}
