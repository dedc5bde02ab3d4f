package main

import (
	"context"
	"fmt"
	"time"

	video "VidHub.com/cmd/api/handlers/video"
	"VidHub.com/cmd/api/router/authfunc"
	webs "VidHub.com/cmd/api/router/websocket"
	"VidHub.com/cmd/api/rpc"
	"VidHub.com/cmd/video/infras/redis"
	videoservice "VidHub.com/cmd/video/service"
	"VidHub.com/config"
	"VidHub.com/config/pprof"
	jwt "VidHub.com/pkg"
	"VidHub.com/pkg/broadcast"
	"VidHub.com/pkg/database"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/metrics"
	"VidHub.com/pkg/mq"
	"VidHub.com/pkg/oss"
	"VidHub.com/pkg/security"
	"VidHub.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/cors"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func Init(ctx context.Context) (*gorm.DB, *rpc.Deps, func()) {
	config.Init()
	pprof.Load(config.ConfigInfo.Server.PprofAddr)
	if err := utils.InitSnowflake(config.ConfigInfo.Server.NodeId); err != nil {
		panic(err)
	}

	conn, err := database.Open(utils.GetMysqlDsn(), database.DefaultPool)
	if err != nil {
		panic(err)
	}
	if err = database.Migrate(conn); err != nil {
		panic(err)
	}
	closers := []func(){func() { database.Close(conn) }}

	redis.VideoInfo.Addr = config.ConfigInfo.Redis.Addr
	redis.VideoInfo.Password = config.ConfigInfo.Redis.Password
	redis.VideoInfo.DB = config.ConfigInfo.Redis.RankDB
	redis.Load()
	closers = append(closers, redis.Close)

	client := goredis.NewClient(&goredis.Options{
		Addr:     config.ConfigInfo.Redis.Addr,
		Password: config.ConfigInfo.Redis.Password,
		DB:       config.ConfigInfo.Redis.PubSubDB,
	})
	closers = append(closers, func() { client.Close() })
	authfunc.Limiter = newLimiter(client)

	deps := &rpc.Deps{Bus: newBus(ctx, client)}

	// 通知是附加功能, RabbitMQ 不可用时不影响互动
	if url := config.RabbitMqURL(); url != "" {
		producer, err := mq.NewProducer(url)
		if err != nil {
			hlog.Warnf("rabbitmq unavailable, notifications disabled: %v", err)
		} else {
			deps.Producer = producer
			closers = append(closers, func() { producer.Close() })
		}
	}

	store, err := newStore(ctx)
	if err != nil {
		panic(err)
	}
	deps.Store = store

	rpc.InitRPC(conn, *deps)
	videoservice.RebuildRank(ctx)

	return conn, deps, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
}

// newBus 开启 pubsub 时通过 Redis 在多个实例之间转发房间事件
func newBus(ctx context.Context, client *goredis.Client) broadcast.Bus {
	if !config.ConfigInfo.Redis.PubSub {
		hlog.Info("Using in-process broadcast bus")
		return broadcast.NewLocalBus()
	}
	bus := broadcast.NewRedisBus(client)
	// 订阅断开时 Run 自行重连, 直到 ctx 结束
	go bus.Run(ctx)
	return bus
}

func newLimiter(client *goredis.Client) security.Limiter {
	cfg := config.ConfigInfo.RateLimit
	if !cfg.Enabled {
		return nil
	}
	window, err := time.ParseDuration(cfg.Window)
	if err != nil || window <= 0 {
		window = time.Minute
	}
	hlog.Infof("Engagement rate limit: %d requests per %s (%s)", cfg.MaxRequests, window, cfg.Algorithm)
	return security.NewRedisRateLimiter(client, security.RateLimitConfig{
		Algorithm:   cfg.Algorithm,
		WindowSize:  window,
		MaxRequests: cfg.MaxRequests,
	})
}

func newStore(ctx context.Context) (oss.MediaStore, error) {
	switch config.ConfigInfo.Storage.Driver {
	case "minio":
		return oss.NewMinioStore(ctx, oss.MinioConfig{
			Endpoint:  config.ConfigInfo.Minio.Endpoint,
			AccessKey: config.ConfigInfo.Minio.AccessKey,
			SecretKey: config.ConfigInfo.Minio.SecretKey,
			UseSSL:    config.ConfigInfo.Minio.UseSSL,
			Bucket:    config.ConfigInfo.Minio.Bucket,
			PublicURL: config.ConfigInfo.Minio.PublicURL,
		})
	default:
		return oss.NewLocalStore(config.ConfigInfo.Storage.LocalDir, config.ConfigInfo.Storage.PublicURL)
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn, deps, cleanup := Init(ctx)
	defer cleanup()

	maxBody := int(config.ConfigInfo.Server.MaxUploadSize) + 1<<20
	video.MaxUploadSize = config.ConfigInfo.Server.MaxUploadSize
	r := server.New(
		server.WithHostPorts(config.ConfigInfo.Server.HttpAddr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(maxBody),
	)

	// 配置 CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigInfo.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,      // 是否允许发送凭证
		MaxAge:           12 * 3600, // 预检请求的缓存时间
	}))

	// 初始化 JWT
	jwt.AccessTokenJwtInit()

	// 错误处理
	r.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			c.JSON(consts.StatusInternalServerError, map[string]interface{}{
				"code":    errno.ServiceErrCode,
				"message": fmt.Sprintf("[Recovery] err=%v", err),
			})
		})))
	r.Use(metrics.Middleware())

	// 注册路由
	uploadDir := ""
	if local, ok := deps.Store.(*oss.LocalStore); ok {
		uploadDir = local.Dir()
	}
	register(r, conn, uploadDir)

	// 启动 WebSocket 服务
	ws := server.Default(
		server.WithHostPorts(config.ConfigInfo.Server.WsAddr),
	)
	ws.NoHijackConnPool = true
	webs.WebsocketRegister(ws)

	// 启动 WebSocket 和 HTTP 服务
	go ws.Spin()
	r.Spin()
}
