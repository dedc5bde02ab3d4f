package authfunc

import (
	jwt "VidHub.com/pkg"
	"VidHub.com/pkg/security"
	"github.com/cloudwego/hertz/pkg/app"
)

// Limiter 为空时不限流
var Limiter security.Limiter

// Auth 必须携带有效的访问令牌
func Auth() []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		jwt.AccessTokenJwtMiddleware.MiddlewareFunc(),
	)
}

// OptionalAuth 令牌可选, 有效时写入用户标识
func OptionalAuth() []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		jwt.OptionalAuth(),
	)
}

// Engage 互动写操作, 鉴权之后按用户限流
func Engage(scope string) []app.HandlerFunc {
	return append(Auth(),
		security.RateLimitMiddleware(Limiter, scope),
	)
}
