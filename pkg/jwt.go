package pkg

import (
	"context"
	"strconv"
	"time"

	"VidHub.com/cmd/model"
	"VidHub.com/cmd/user/service"
	"VidHub.com/config"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/jwt"
	"github.com/pkg/errors"
)

const (
	loginUserKey = "login_user"
	jwtErrKey    = "jwt_err"
)

var AccessTokenJwtMiddleware *jwt.HertzJWTMiddleware

// AccessTokenJwtInit 使用配置中的密钥初始化全局中间件
func AccessTokenJwtInit() {
	timeout := parseDuration(config.ConfigInfo.Jwt.Timeout, 24*time.Hour)
	maxRefresh := parseDuration(config.ConfigInfo.Jwt.MaxRefresh, 72*time.Hour)
	mw, err := NewJwtMiddleware(config.ConfigInfo.Jwt.Secret, timeout, maxRefresh)
	if err != nil {
		hlog.Fatalf("jwt init failed: %v", err)
	}
	AccessTokenJwtMiddleware = mw
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func NewJwtMiddleware(secret string, timeout, maxRefresh time.Duration) (*jwt.HertzJWTMiddleware, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return jwt.New(&jwt.HertzJWTMiddleware{
		Realm:         "vidhub",
		Key:           []byte(secret),
		Timeout:       timeout,
		MaxRefresh:    maxRefresh,
		IdentityKey:   constants.IdentityKey,
		TokenLookup:   "header: Authorization, query: token",
		TokenHeadName: "Bearer",
		TimeFunc:      time.Now,
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			switch v := data.(type) {
			case *model.User:
				return jwt.MapClaims{constants.IdentityKey: strconv.FormatInt(v.UserId, 10)}
			case int64:
				return jwt.MapClaims{constants.IdentityKey: strconv.FormatInt(v, 10)}
			}
			return jwt.MapClaims{}
		},
		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(ctx, c)
			return claims[constants.IdentityKey]
		},
		Authenticator: func(ctx context.Context, c *app.RequestContext) (interface{}, error) {
			var req model.LoginRequest
			if err := c.BindAndValidate(&req); err != nil {
				return nil, errno.ParamErr
			}
			if req.Email == "" || req.Password == "" {
				return nil, errno.ParamErr.WithMessage("Email and password are required")
			}
			user, err := service.NewLoginUserService(ctx).LoginUser(&req)
			if err != nil {
				return nil, err
			}
			c.Set(loginUserKey, user)
			return user, nil
		},
		LoginResponse: func(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
			resp := &model.AuthResponse{Token: token, Expire: expire.Format(time.RFC3339)}
			if v, ok := c.Get(loginUserKey); ok {
				if user, ok := v.(*model.User); ok {
					resp.User = user.ToChannel()
				}
			}
			writeResponse(c, errno.Success, resp)
		},
		RefreshResponse: func(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
			writeResponse(c, errno.Success, &model.AuthResponse{Token: token, Expire: expire.Format(time.RFC3339)})
		},
		HTTPStatusMessageFunc: func(e error, ctx context.Context, c *app.RequestContext) string {
			// 非业务错误一律视为令牌无效
			Err := errno.TokenInvailedErr
			errors.As(e, &Err)
			c.Set(jwtErrKey, Err)
			return Err.ErrMsg
		},
		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			Err := errno.TokenInvailedErr
			if v, ok := c.Get(jwtErrKey); ok {
				if e, ok := v.(errno.ErrNo); ok {
					Err = e
				}
			}
			hlog.CtxInfof(ctx, "jwt unauthorized path=%s: %s", c.FullPath(), message)
			writeResponse(c, Err, nil)
		},
	})
}

func writeResponse(c *app.RequestContext, err error, data interface{}) {
	Err := errno.ConvertErr(err)
	c.JSON(errno.HTTPStatus(err), map[string]interface{}{
		"code":    Err.ErrCode,
		"message": Err.ErrMsg,
		"data":    data,
	})
}

// GenerateToken 注册成功后直接签发令牌
func GenerateToken(userId int64) (string, time.Time, error) {
	if AccessTokenJwtMiddleware == nil {
		return "", time.Time{}, errno.ServiceErr
	}
	return AccessTokenJwtMiddleware.TokenGenerator(userId)
}

// ConvertJWTPayloadToString 读取中间件解析出的用户标识
func ConvertJWTPayloadToString(ctx context.Context, c *app.RequestContext) (interface{}, error) {
	v, ok := c.Get(constants.IdentityKey)
	if !ok || v == nil {
		return nil, errno.TokenInvailedErr
	}
	return v, nil
}

// GetUserId 必须在鉴权中间件之后调用
func GetUserId(ctx context.Context, c *app.RequestContext) (int64, error) {
	v, err := ConvertJWTPayloadToString(ctx, c)
	if err != nil {
		return 0, err
	}
	uid := utils.Transfer(v)
	if uid <= 0 {
		return 0, errno.TokenInvailedErr
	}
	return uid, nil
}

// OptionalUserId 令牌缺失或无效时返回 false, 不中断请求
func OptionalUserId(ctx context.Context, c *app.RequestContext) (int64, bool) {
	if uid, err := GetUserId(ctx, c); err == nil {
		return uid, true
	}
	if AccessTokenJwtMiddleware == nil {
		return 0, false
	}
	claims, err := AccessTokenJwtMiddleware.GetClaimsFromJWT(ctx, c)
	if err != nil {
		return 0, false
	}
	uid := utils.Transfer(claims[constants.IdentityKey])
	if uid <= 0 {
		return 0, false
	}
	c.Set(constants.IdentityKey, claims[constants.IdentityKey])
	return uid, true
}

// OptionalAuth 有合法令牌时写入用户标识, 否则按匿名请求继续
func OptionalAuth() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		OptionalUserId(ctx, c)
		c.Next(ctx)
	}
}
