package main

import (
	"context"

	interaction "VidHub.com/cmd/api/handlers/interaction"
	user "VidHub.com/cmd/api/handlers/user"
	video "VidHub.com/cmd/api/handlers/video"
	"VidHub.com/cmd/api/router/authfunc"
	"VidHub.com/pkg/database"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func register(r *server.Hertz, conn *gorm.DB, uploadDir string) {
	r.GET("/metrics", adaptor.HertzHandler(promhttp.Handler()))
	r.GET("/health", healthHandler(conn))
	if uploadDir != "" {
		r.StaticFS("/uploads", &app.FS{Root: uploadDir, PathRewrite: app.NewPathSlashesStripper(1)})
	}

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", user.Register)
	auth.POST("/login", user.LoginUser)
	auth.GET("/refresh_token", append(authfunc.Auth(), user.RefreshToken)...)

	videos := api.Group("/videos")
	videos.GET("", video.ListVideos)
	videos.GET("/popular", video.PopularVideos)
	videos.GET("/dashboard", append(authfunc.Auth(), video.Dashboard)...)
	videos.POST("/upload", append(authfunc.Auth(), video.UploadVideo)...)
	videos.GET("/:id", append(authfunc.OptionalAuth(), video.GetVideo)...)
	videos.DELETE("/:id", append(authfunc.Auth(), video.DeleteVideo)...)
	videos.POST("/:id/view", append(authfunc.Engage("view"), interaction.VideoVisit)...)
	videos.POST("/:id/react", append(authfunc.Engage("react"), interaction.LikeAction)...)
	videos.POST("/:id/subscribe", append(authfunc.Engage("subscribe"), interaction.Subscribe)...)
	videos.GET("/:id/subscription-status", append(authfunc.OptionalAuth(), interaction.SubscriptionStatus)...)
	videos.POST("/:id/recount", append(authfunc.Auth(), interaction.RecountVideo)...)

	users := api.Group("/users")
	users.GET("/:id", user.GetUserInfo)
	users.GET("/:id/videos", user.GetUserVideos)

	api.GET("/notifications", append(authfunc.Auth(), interaction.ListNotifications)...)
}

func healthHandler(conn *gorm.DB) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if err := database.HealthCheck(ctx, conn); err != nil {
			hlog.CtxErrorf(ctx, "health check failed: %v", err)
			c.JSON(consts.StatusServiceUnavailable, map[string]interface{}{
				"code":    errno.ServiceErrCode,
				"message": "database unavailable",
			})
			return
		}
		c.JSON(consts.StatusOK, map[string]interface{}{
			"code":    errno.SuccessCode,
			"message": "ok",
		})
	}
}
