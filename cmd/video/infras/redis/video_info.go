package redis

import (
	"context"
	"strconv"

	"VidHub.com/pkg/constants"
	"github.com/go-redis/redis"
	"github.com/pkg/errors"
)

var errNotLoaded = errors.New("video info redis not loaded")

// PutVideoVisit 观看数是绝对值, 直接覆盖分数
func PutVideoVisit(videoId, views int64) error {
	if redisDBVideoInfo == nil {
		return errNotLoaded
	}
	_, err := redisDBVideoInfo.ZAdd(constants.VisitRankKey, redis.Z{
		Score:  float64(views),
		Member: strconv.FormatInt(videoId, 10),
	}).Result()
	return err
}

func GetVideoVisitCount(videoId int64) (int64, error) {
	if redisDBVideoInfo == nil {
		return -1, errNotLoaded
	}
	s, err := redisDBVideoInfo.ZScore(constants.VisitRankKey, strconv.FormatInt(videoId, 10)).Result()
	if err != nil {
		return -1, err
	}
	return int64(s), nil
}

// TopVideoIds 观看数最高的 n 个视频
func TopVideoIds(n int) ([]int64, error) {
	if redisDBVideoInfo == nil {
		return nil, errNotLoaded
	}
	members, err := redisDBVideoInfo.ZRevRange(constants.VisitRankKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func RemoveVideoVisit(videoId int64) error {
	if redisDBVideoInfo == nil {
		return nil
	}
	return redisDBVideoInfo.ZRem(constants.VisitRankKey, strconv.FormatInt(videoId, 10)).Err()
}

// RebuildVisitRank 用数据库中的观看数覆盖排行
func RebuildVisitRank(counts map[int64]int64) error {
	if redisDBVideoInfo == nil {
		return errNotLoaded
	}
	if len(counts) == 0 {
		return nil
	}
	members := make([]redis.Z, 0, len(counts))
	for id, views := range counts {
		members = append(members, redis.Z{Score: float64(views), Member: strconv.FormatInt(id, 10)})
	}
	pipe := redisDBVideoInfo.TxPipeline()
	pipe.Del(constants.VisitRankKey)
	pipe.ZAdd(constants.VisitRankKey, members...)
	_, err := pipe.Exec()
	return err
}

// VisitRank 供互动服务在观看数变化后调用
type VisitRank struct{}

func (VisitRank) UpdateVideoViews(_ context.Context, videoId, views int64) error {
	if redisDBVideoInfo == nil {
		return nil
	}
	return PutVideoVisit(videoId, views)
}
