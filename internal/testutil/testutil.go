// Package testutil 给各个包的测试提供内存数据库、内存Redis和造数函数
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"Vista_Video/internal/data"
	"Vista_Video/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB 每个测试一个独立的sqlite内存库，打开外键（级联删除要靠它），并把唯一键冲突翻译成gorm.ErrDuplicatedKey
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, dbSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("无法打开测试数据库: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("无法获取连接池: %v", err)
	}
	// 内存库只活在连接上，固定一个连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := data.AutoMigrate(db); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func NewRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

func CreateUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return user
}

func CreateVideo(t *testing.T, db *gorm.DB, owner *model.User, title string) *model.Video {
	t.Helper()
	video := &model.Video{
		UserID:   owner.ID,
		Title:    title,
		FileID:   "file_" + title,
		VideoURL: "https://ik.imagekit.io/demo/videos/" + title + ".mp4",
	}
	if err := db.Create(video).Error; err != nil {
		t.Fatalf("创建视频失败: %v", err)
	}
	return video
}
