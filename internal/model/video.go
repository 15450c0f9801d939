package model

// Video 上传到CDN之后才会落库，FileID和VideoURL都来自CDN的返回
type Video struct {
	BaseModel
	UserID      uint64 `gorm:"not null;index"` // 上传者
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`

	FileID       string  `gorm:"size:255;not null"` // CDN上的文件ID，删除时要用
	VideoURL     string  `gorm:"size:500;not null"`
	ThumbnailURL *string `gorm:"size:500"` // 自定义封面，nil表示用视频帧生成

	Views    uint64 `gorm:"not null;default:0"`
	Likes    uint64 `gorm:"not null;default:0"`
	Dislikes uint64 `gorm:"not null;default:0"`

	// 用户被删除时，视频跟着删
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Video) TableName() string {
	return "videos"
}
