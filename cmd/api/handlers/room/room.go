package room

import (
	"context"

	"VidHub.com/cmd/api/rpc"
	jwt "VidHub.com/pkg"
	"VidHub.com/pkg/metrics"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/websocket"
)

var upgrader = websocket.HertzUpgrader{
	CheckOrigin: func(ctx *app.RequestContext) bool {
		return true // 允许所有来源连接
	},
}

// Handler 观看页的实时通道, 匿名连接也可以加入房间
func Handler(ctx context.Context, c *app.RequestContext) {
	userId, _ := jwt.OptionalUserId(ctx, c)
	err := upgrader.Upgrade(c, func(conn *websocket.Conn) {
		cl := newClient(rpc.Bus, conn, userId)
		metrics.WsConnections.Inc()
		defer metrics.WsConnections.Dec()
		hlog.CtxInfof(ctx, "ws connected user=%d", userId)

		done := make(chan struct{})
		go func() {
			defer close(done)
			cl.writePump()
		}()
		cl.readPump(ctx)
		cl.close()
		<-done
		hlog.CtxInfof(ctx, "ws disconnected user=%d", userId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "ws upgrade failed: %v", err)
		c.JSON(consts.StatusBadRequest, `error`)
		return
	}
}
