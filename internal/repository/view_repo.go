package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const keySessionViewedPrefix = "session:viewed:"

// ViewRepository 记录某个会话已经计过播放量的视频
type ViewRepository interface {
	// 第一次标记返回true，已经标记过返回false
	MarkViewed(sessionID string, videoID uint64) (bool, error)
}

type viewRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewViewRepository(rdb *redis.Client, ttl time.Duration) ViewRepository {
	return &viewRepository{rdb: rdb, ttl: ttl}
}

// 1、SADD把videoID加入会话集合，返回1说明是新加入的 2、顺便刷新整个集合的过期时间，和会话一起过期
func (r *viewRepository) MarkViewed(sessionID string, videoID uint64) (bool, error) {
	ctx := context.Background()
	key := keySessionViewedPrefix + sessionID

	pipe := r.rdb.TxPipeline()
	added := pipe.SAdd(ctx, key, strconv.FormatUint(videoID, 10))
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return added.Val() == 1, nil
}
