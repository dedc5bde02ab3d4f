package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vidhub"

var (
	// EngagementMutations 按操作和结果统计互动写入, result: applied | noop | error
	EngagementMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engagement",
			Name:      "mutations_total",
			Help:      "Total number of engagement mutations",
		},
		[]string{"op", "result"},
	)

	// EngagementConflicts 唯一索引或条件更新命中并发冲突的次数
	EngagementConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engagement",
			Name:      "conflicts_total",
			Help:      "Engagement mutations resolved as concurrent conflicts",
		},
		[]string{"op"},
	)

	BroadcastPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "broadcast",
			Name:      "published_total",
			Help:      "Room events published, by event and status",
		},
		[]string{"event", "status"},
	)

	// BroadcastDropped 客户端发送队列已满时丢弃的事件
	BroadcastDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "broadcast",
			Name:      "dropped_total",
			Help:      "Room events dropped for slow websocket clients",
		},
	)

	WsConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ws",
			Name:      "connections",
			Help:      "Number of open websocket connections",
		},
	)

	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Middleware 记录请求数和耗时, path 使用路由模板避免标签爆炸
func Middleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		c.Next(ctx)

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := string(c.Method())
		RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		RequestCounter.WithLabelValues(method, path, strconv.Itoa(c.Response.StatusCode())).Inc()
	}
}
