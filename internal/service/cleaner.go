package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"Vista_Video/internal/metrics"
	"Vista_Video/pkg/rabbitmq"
)

var ErrBadCleanupMessage = errors.New("bad cleanup message")

// FileDeleter 由cdn.Client实现
type FileDeleter interface {
	Delete(ctx context.Context, fileID string) error
}

// FileCleaner 删除视频时清理CDN上的文件，失败由调用方决定怎么处理（记日志后继续删本地记录）
type FileCleaner interface {
	Cleanup(ctx context.Context, fileID string) error
}

// MessagePublisher 由rabbitmq.Publisher实现
type MessagePublisher interface {
	Publish(queue string, body []byte) error
}

type FileCleanupMessage struct {
	FileID      string    `json:"file_id"`
	RequestedAt time.Time `json:"requested_at"`
}

type cdnCleaner struct {
	deleter FileDeleter
}

// NewCDNCleaner 同步删除，调用一次，不重试
func NewCDNCleaner(deleter FileDeleter) FileCleaner {
	return &cdnCleaner{deleter: deleter}
}

func (c *cdnCleaner) Cleanup(ctx context.Context, fileID string) error {
	return deleteFile(ctx, c.deleter, fileID)
}

type queuedCleaner struct {
	publisher MessagePublisher
}

// NewQueuedCleaner 只投递消息，由consumer进程去删
func NewQueuedCleaner(publisher MessagePublisher) FileCleaner {
	return &queuedCleaner{publisher: publisher}
}

func (c *queuedCleaner) Cleanup(_ context.Context, fileID string) error {
	body, err := json.Marshal(FileCleanupMessage{FileID: fileID, RequestedAt: time.Now()})
	if err != nil {
		return err
	}
	if err := c.publisher.Publish(rabbitmq.QueueCDNCleanup, body); err != nil {
		return fmt.Errorf("投递清理消息失败: %w", err)
	}
	return nil
}

// ProcessCleanupMessage consumer收到一条清理消息后调用：解析失败返回ErrBadCleanupMessage，删除失败原样返回
func ProcessCleanupMessage(ctx context.Context, deleter FileDeleter, body []byte) (string, error) {
	var msg FileCleanupMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return "", errors.Join(ErrBadCleanupMessage, err)
	}
	if msg.FileID == "" {
		return "", ErrBadCleanupMessage
	}
	return msg.FileID, deleteFile(ctx, deleter, msg.FileID)
}

func deleteFile(ctx context.Context, deleter FileDeleter, fileID string) error {
	if fileID == "" {
		return nil
	}
	if err := deleter.Delete(ctx, fileID); err != nil {
		metrics.CDNRequests.WithLabelValues("delete", "error").Inc()
		return err
	}
	metrics.CDNRequests.WithLabelValues("delete", "ok").Inc()
	return nil
}
