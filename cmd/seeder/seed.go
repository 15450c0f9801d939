package main

import (
	"fmt"
	"math/rand"

	"Vista_Video/internal/data"
	"Vista_Video/internal/model"
	"Vista_Video/internal/repository"
	"Vista_Video/internal/service"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ImageKit的公开示例视频，生成的封面和播放地址都能直接打开
var sampleVideoURLs = []string{
	"https://ik.imagekit.io/demo/sample-video.mp4",
	"https://ik.imagekit.io/demo/img/sample-video.mp4",
	"https://ik.imagekit.io/ikmedia/example_video.mp4",
}

type seedOptions struct {
	Users    int
	Videos   int
	Votes    int
	Reset    bool
	Password string
}

type seedReport struct {
	Users     int
	Videos    int
	Votes     int64
	Recounted int
}

// seed 1、（可选）重建表 2、造用户 3、造视频 4、随机投票 5、按votes表重算每个视频的赞踩数
func seed(db *gorm.DB, opts seedOptions) (*seedReport, error) {
	if opts.Reset {
		// 注意：这将删除所有数据！
		if err := db.Migrator().DropTable(&model.Vote{}, &model.Video{}, &model.User{}); err != nil {
			return nil, fmt.Errorf("删除旧表失败: %w", err)
		}
	}
	if err := data.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	// 所有用户共用一个密码，只加密一次
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	report := &seedReport{}
	userIDs := make([]uint64, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		// faker的用户名可能重复，加上序号
		user := model.User{
			Username: fmt.Sprintf("%s_%d", faker.Username(), i),
			Password: string(hashedPassword),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("创建用户失败: %w", err)
		}
		userIDs = append(userIDs, user.ID)
	}
	report.Users = len(userIDs)
	if len(userIDs) == 0 {
		return report, nil
	}

	videoIDs := make([]uint64, 0, opts.Videos)
	for i := 0; i < opts.Videos; i++ {
		video := model.Video{
			// 从已创建的用户中随机选择一个作为作者
			UserID:      userIDs[rand.Intn(len(userIDs))],
			Title:       truncate(faker.Sentence(), 200),
			Description: faker.Paragraph(),
			FileID:      "seed_" + uuid.NewString(),
			VideoURL:    sampleVideoURLs[i%len(sampleVideoURLs)],
			Views:       uint64(rand.Intn(10000)),
		}
		if err := db.Create(&video).Error; err != nil {
			return nil, fmt.Errorf("创建视频失败: %w", err)
		}
		videoIDs = append(videoIDs, video.ID)
	}
	report.Videos = len(videoIDs)
	if len(videoIDs) == 0 {
		return report, nil
	}

	values := []int8{model.VoteLike, model.VoteLike, model.VoteDislike}
	for i := 0; i < opts.Votes; i++ {
		vote := model.Vote{
			UserID:  userIDs[rand.Intn(len(userIDs))],
			VideoID: videoIDs[rand.Intn(len(videoIDs))],
			Value:   values[rand.Intn(len(values))],
		}
		// 唯一键冲突就什么都不做
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoNothing: true,
		}).Create(&vote).Error; err != nil {
			return nil, fmt.Errorf("创建投票失败: %w", err)
		}
	}
	if err := db.Model(&model.Vote{}).Count(&report.Votes).Error; err != nil {
		return nil, err
	}

	// 投票是直接插表的，计数器要按votes表重算一遍
	videoRepo := repository.NewVideoRepository(db, nil)
	voteRepo := repository.NewVoteRepository(db)
	voteService := service.NewVoteService(voteRepo, videoRepo, data.NewUnitOfWork(db, videoRepo, voteRepo))
	for _, id := range videoIDs {
		if _, err := voteService.Recount(id); err != nil {
			return nil, fmt.Errorf("重算视频%d失败: %w", id, err)
		}
		report.Recounted++
	}
	return report, nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
