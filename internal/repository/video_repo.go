package repository

import (
	"Vista_Video/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoRepository interface {
	Create(video *model.Video) error
	// 全部视频，按创建时间倒序
	FindAll() ([]model.Video, error)
	FindByUsername(username string) ([]model.Video, error)
	FindByID(videoID uint64) (*model.Video, error)
	// 带锁的查找，只能在事务里用
	FindByIDForUpdate(videoID uint64) (*model.Video, error)
	FindByIDAndOwner(videoID, userID uint64) (*model.Video, error)
	Delete(videoID uint64) error

	IncrementViews(videoID uint64) error
	UpdateVoteCounts(videoID, likes, dislikes uint64) error

	GetVideoCache(videoID uint64) (*model.Video, error)
	SetVideoCache(video *model.Video) error
	DeleteVideoCache(videoID uint64) error

	WithTx(tx *gorm.DB) VideoRepository
}

type videoRepository struct {
	db  *gorm.DB
	rdb *redis.Client // 可以为nil，nil时不走缓存
}

func NewVideoRepository(db *gorm.DB, rdb *redis.Client) VideoRepository {
	return &videoRepository{
		db:  db,
		rdb: rdb,
	}
}

// WithTx 返回一个绑定事务的实例，事务中不操作Redis
func (r *videoRepository) WithTx(tx *gorm.DB) VideoRepository {
	return &videoRepository{
		db: tx,
	}
}

func (r *videoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

func (r *videoRepository) FindAll() ([]model.Video, error) {
	var videos []model.Video
	// Preload("User")在查询视频的同时，预加载上传者信息
	err := r.db.Preload("User").Order("created_at desc").Order("id desc").Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// 频道页：按上传者用户名过滤，用户不存在时就是空列表
func (r *videoRepository) FindByUsername(username string) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.
		Preload("User").
		Where("user_id IN (?)", r.db.Model(&model.User{}).Select("id").Where("username = ?", username)).
		Order("created_at desc").
		Order("id desc").
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// 利用videoID找视频：1、先读缓存 2、未命中读数据库并preload上传者 3、写回缓存
func (r *videoRepository) FindByID(videoID uint64) (*model.Video, error) {
	video, err := r.GetVideoCache(videoID)
	if err == nil && video != nil {
		return video, nil
	}

	var dbVideo model.Video
	err = r.db.Preload("User").First(&dbVideo, videoID).Error
	if err != nil {
		return nil, err
	}

	_ = r.SetVideoCache(&dbVideo)
	return &dbVideo, nil
}

// SELECT * FROM `videos` WHERE `id` = ? LIMIT 1 FOR UPDATE;
// 排他锁的生命周期和事务绑定，投票的读-改-写全程持有
func (r *videoRepository) FindByIDForUpdate(videoID uint64) (*model.Video, error) {
	var video model.Video
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&video, videoID).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// 只有上传者本人能找到，别人拿到的是gorm.ErrRecordNotFound
func (r *videoRepository) FindByIDAndOwner(videoID, userID uint64) (*model.Video, error) {
	var video model.Video
	err := r.db.Where("id = ? AND user_id = ?", videoID, userID).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// 硬删除，votes表上的外键会级联删除投票
func (r *videoRepository) Delete(videoID uint64) error {
	return r.db.Delete(&model.Video{}, videoID).Error
}

// UPDATE `videos` SET `views` = `views` + 1 WHERE id = ?
func (r *videoRepository) IncrementViews(videoID uint64) error {
	return r.db.Model(&model.Video{}).Where("id = ?", videoID).UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

// 投票事务里已经锁住了这一行，直接写算好的值
func (r *videoRepository) UpdateVoteCounts(videoID, likes, dislikes uint64) error {
	return r.db.Model(&model.Video{}).Where("id = ?", videoID).UpdateColumns(map[string]interface{}{
		"likes":    likes,
		"dislikes": dislikes,
	}).Error
}

// 返回存储单个视频信息的字符串Key
func (r *videoRepository) keyVideoInfo(videoID uint64) string {
	return fmt.Sprintf("video:info:%d", videoID)
}

// 从Redis缓存中获取单个Video，缓存不存在时返回(nil, nil)
func (r *videoRepository) GetVideoCache(videoID uint64) (*model.Video, error) {
	if r.rdb == nil {
		return nil, nil
	}
	videoJSON, err := r.rdb.Get(context.Background(), r.keyVideoInfo(videoID)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	var video model.Video
	if err := json.Unmarshal([]byte(videoJSON), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) SetVideoCache(video *model.Video) error {
	if r.rdb == nil {
		return nil
	}
	videoJSON, err := json.Marshal(video)
	if err != nil {
		return err
	}
	// 设置过期时间，再加上随机性防止缓存雪崩
	expiration := time.Minute*5 + time.Duration(rand.Intn(60))*time.Second
	return r.rdb.Set(context.Background(), r.keyVideoInfo(video.ID), videoJSON, expiration).Err()
}

// 计数器、封面变化或视频删除后调用，下次读会回源数据库
func (r *videoRepository) DeleteVideoCache(videoID uint64) error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Del(context.Background(), r.keyVideoInfo(videoID)).Err()
}
