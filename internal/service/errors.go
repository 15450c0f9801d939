package service

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	// ErrInvalidVote vote字段既不是like也不是dislike，HTTP 400
	ErrInvalidVote   = errors.New("Invalid vote")
	ErrVideoNotFound = errors.New("video not found")
	// ErrVoteConflict 同一用户对同一视频并发投票，第二次插入被唯一索引拒绝
	ErrVoteConflict = errors.New("vote conflict, please retry")
	ErrUserExists   = errors.New("用户名已存在")
	ErrBadLogin     = errors.New("用户名或密码错误")
)

// FieldError 单个表单字段的校验错误
type FieldError struct {
	Field   string
	Message string
}

// ValidationError 表单校验失败，对外展示成 "field: message;field: message"
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, ";")
}

// 错误号 1062 就是 MySQL 的 "Duplicate entry"；开启TranslateError后gorm会统一翻译成ErrDuplicatedKey
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
