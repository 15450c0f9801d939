package model

import (
	"time"
)

// 由于gorm的基本结构中ID是uint类型，我想都统一成uint64，所以自己搞了个base结构体
// 不带DeletedAt：视频和投票都是硬删除，否则级联删除和(user_id, video_id)唯一索引都会失效
type BaseModel struct {
	ID        uint64 `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
