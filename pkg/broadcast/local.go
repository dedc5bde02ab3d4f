package broadcast

import (
	"context"
	"sync"
	"sync/atomic"
)

// LocalBus 进程内的房间扇出
type LocalBus struct {
	mu     sync.RWMutex
	rooms  map[string]map[int64]Handler
	nextID atomic.Int64
}

func NewLocalBus() *LocalBus {
	return &LocalBus{
		rooms: make(map[string]map[int64]Handler),
	}
}

func (b *LocalBus) Publish(_ context.Context, topic string, payload []byte) error {
	b.mu.RLock()
	room := b.rooms[topic]
	handlers := make([]Handler, 0, len(room))
	for _, h := range room {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(topic, payload)
	}
	return nil
}

func (b *LocalBus) Subscribe(topic string, handler Handler) func() {
	id := b.nextID.Add(1)
	b.mu.Lock()
	room, ok := b.rooms[topic]
	if !ok {
		room = make(map[int64]Handler)
		b.rooms[topic] = room
	}
	room[id] = handler
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if room, ok := b.rooms[topic]; ok {
				delete(room, id)
				if len(room) == 0 {
					delete(b.rooms, topic)
				}
			}
		})
	}
}

// RoomCount 当前有订阅者的房间数
func (b *LocalBus) RoomCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.rooms)
}
