package repository

import (
	"Vista_Video/internal/model"
	"errors"

	"gorm.io/gorm"
)

// VoteCounts 从votes表实际统计出来的赞踩数
type VoteCounts struct {
	Likes    uint64
	Dislikes uint64
}

type VoteRepository interface {
	// 没有投过票时返回(nil, nil)
	FindByUserAndVideo(userID, videoID uint64) (*model.Vote, error)
	Create(vote *model.Vote) error
	UpdateValue(voteID uint64, value int8) error
	Delete(voteID uint64) error
	CountByVideo(videoID uint64) (VoteCounts, error)

	WithTx(tx *gorm.DB) VoteRepository
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) WithTx(tx *gorm.DB) VoteRepository {
	return &voteRepository{db: tx}
}

func (r *voteRepository) FindByUserAndVideo(userID, videoID uint64) (*model.Vote, error) {
	var vote model.Vote
	err := r.db.Where("user_id = ? AND video_id = ?", userID, videoID).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// 并发下重复插入会撞上idx_user_video，错误原样返回给上层判断
func (r *voteRepository) Create(vote *model.Vote) error {
	return r.db.Create(vote).Error
}

func (r *voteRepository) UpdateValue(voteID uint64, value int8) error {
	return r.db.Model(&model.Vote{}).Where("id = ?", voteID).UpdateColumn("value", value).Error
}

func (r *voteRepository) Delete(voteID uint64) error {
	return r.db.Exec("DELETE FROM votes WHERE id = ?", voteID).Error
}

// SELECT SUM(value = 1), SUM(value = -1) FROM votes WHERE video_id = ?
func (r *voteRepository) CountByVideo(videoID uint64) (VoteCounts, error) {
	var counts VoteCounts
	err := r.db.Model(&model.Vote{}).
		Select("COALESCE(SUM(CASE WHEN value = ? THEN 1 ELSE 0 END), 0) AS likes, "+
			"COALESCE(SUM(CASE WHEN value = ? THEN 1 ELSE 0 END), 0) AS dislikes", model.VoteLike, model.VoteDislike).
		Where("video_id = ?", videoID).
		Scan(&counts).Error
	return counts, err
}
