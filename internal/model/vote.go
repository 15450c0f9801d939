package model

import "time"

const (
	VoteLike    int8 = 1
	VoteDislike int8 = -1
)

// 用户对视频的一票，uniqueIndex保证一个用户对一个视频最多一条记录，重复插入由数据库拒绝
type Vote struct {
	ID        uint64 `gorm:"primarykey"`
	UserID    uint64 `gorm:"not null;uniqueIndex:idx_user_video"`
	VideoID   uint64 `gorm:"not null;uniqueIndex:idx_user_video;index"`
	Value     int8   `gorm:"not null"` // 1赞 -1踩
	CreatedAt time.Time

	User  User  `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Video Video `gorm:"foreignKey:VideoID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Vote) TableName() string {
	return "votes"
}
