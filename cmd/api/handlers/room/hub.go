package room

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"VidHub.com/pkg/broadcast"
	"VidHub.com/pkg/metrics"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/websocket"
)

const (
	sendBuffer     = 64
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 1024
)

// client 一个 WebSocket 连接, 可以同时加入多个视频房间
type client struct {
	bus    broadcast.Bus
	conn   *websocket.Conn
	userId int64
	send   chan []byte

	mu     sync.Mutex
	closed bool
	rooms  map[string]func()
}

func newClient(bus broadcast.Bus, conn *websocket.Conn, userId int64) *client {
	return &client{
		bus:    bus,
		conn:   conn,
		userId: userId,
		send:   make(chan []byte, sendBuffer),
		rooms:  make(map[string]func()),
	}
}

// deliver 在发布方的 goroutine 中执行, 队列满时只丢弃这个连接的事件
func (cl *client) deliver(_ string, payload []byte) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.closed {
		return
	}
	select {
	case cl.send <- payload:
	default:
		metrics.BroadcastDropped.Inc()
	}
}

func (cl *client) join(videoId int64) {
	topic := broadcast.RoomTopic(videoId)
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.closed {
		return
	}
	if _, ok := cl.rooms[topic]; ok {
		return
	}
	cl.rooms[topic] = cl.bus.Subscribe(topic, cl.deliver)
}

func (cl *client) leave(videoId int64) {
	topic := broadcast.RoomTopic(videoId)
	cl.mu.Lock()
	cancel, ok := cl.rooms[topic]
	delete(cl.rooms, topic)
	cl.mu.Unlock()
	if ok {
		cancel()
	}
}

// close 退出所有房间并关闭发送队列, 可重复调用
func (cl *client) close() {
	cl.mu.Lock()
	if cl.closed {
		cl.mu.Unlock()
		return
	}
	cl.closed = true
	rooms := cl.rooms
	cl.rooms = nil
	close(cl.send)
	cl.mu.Unlock()

	for _, cancel := range rooms {
		cancel()
	}
}

func (cl *client) handleMessage(ctx context.Context, message []byte) {
	var msg broadcast.ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		hlog.CtxDebugf(ctx, "ws user=%d bad message: %v", cl.userId, err)
		return
	}
	videoId, err := msg.VideoID()
	if err != nil || videoId <= 0 {
		hlog.CtxDebugf(ctx, "ws user=%d bad video id %q", cl.userId, msg.VideoId)
		return
	}
	switch msg.Event {
	case broadcast.EventJoinVideo:
		cl.join(videoId)
	case broadcast.EventLeaveVideo:
		cl.leave(videoId)
	default:
		hlog.CtxDebugf(ctx, "ws user=%d unknown event %s", cl.userId, msg.Event)
	}
}

func (cl *client) readPump(ctx context.Context) {
	cl.conn.SetReadLimit(maxMessageSize)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, message, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				hlog.CtxInfof(ctx, "ws user=%d read failed: %v", cl.userId, err)
			}
			return
		}
		cl.handleMessage(ctx, message)
	}
}

// writePump 是唯一写连接的 goroutine, 退出时关闭连接
func (cl *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()
	for {
		select {
		case message, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
