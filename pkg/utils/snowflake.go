package utils

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

// 视频ID: 41位毫秒时间戳 | 10位节点号 | 12位序列号
const (
	idEpoch      = int64(1704067200000) // 2024-01-01
	nodeBits     = uint(10)
	sequenceBits = uint(12)
	maxNode      = int64(-1 ^ (-1 << nodeBits))
	maxSequence  = int64(-1 ^ (-1 << sequenceBits))
	timeShift    = nodeBits + sequenceBits
)

// Snowflake 多个 api 实例需要配置不同的节点号
type Snowflake struct {
	mu       sync.Mutex
	node     int64
	lastTime int64
	sequence int64
}

func NewSnowflake(node int64) (*Snowflake, error) {
	if node < 0 || node > maxNode {
		return nil, errors.Errorf("snowflake node %d out of range [0, %d]", node, maxNode)
	}
	return &Snowflake{node: node}, nil
}

func (s *Snowflake) GenerateID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixMilli()
	if now < s.lastTime {
		// 时钟回拨
		now = s.lastTime
	}
	if now == s.lastTime {
		s.sequence = (s.sequence + 1) & maxSequence
		if s.sequence == 0 {
			for now <= s.lastTime {
				now = time.Now().UnixMilli()
			}
		}
	} else {
		s.sequence = 0
	}
	s.lastTime = now
	return (now-idEpoch)<<timeShift | s.node<<sequenceBits | s.sequence
}

var (
	videoIds     *Snowflake
	videoIdsOnce sync.Once
)

// InitSnowflake 在 main 中按配置的节点号初始化, 未调用时使用节点0
func InitSnowflake(node int64) error {
	sf, err := NewSnowflake(node)
	if err != nil {
		return err
	}
	videoIdsOnce.Do(func() { videoIds = sf })
	return nil
}

// GenerateVideoID 视频ID, 同一节点内单调递增
func GenerateVideoID() int64 {
	videoIdsOnce.Do(func() { videoIds, _ = NewSnowflake(0) })
	return videoIds.GenerateID()
}
