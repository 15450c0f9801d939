package model

type User struct {
	BaseModel        // 包括 ID, CreatedAt, UpdatedAt
	Username  string `gorm:"size:150;unique;not null"`
	Password  string `gorm:"not null" json:"-"`
}
