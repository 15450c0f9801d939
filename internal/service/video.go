package service

import (
	"Vista_Video/internal/cdn"
	"Vista_Video/internal/metrics"
	"Vista_Video/internal/model"
	"Vista_Video/internal/repository"
	"Vista_Video/pkg/logger"
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// MediaUploader 由cdn.Client实现
type MediaUploader interface {
	Upload(ctx context.Context, data []byte, fileName, folder string) (*cdn.UploadResult, error)
	UploadThumbnail(ctx context.Context, payload, fileName string) (*cdn.UploadResult, error)
}

type UploadVideoInput struct {
	UserID        uint64
	Title         string
	Description   string
	FileName      string
	Data          []byte
	ThumbnailData string // base64或data URI，可以为空
}

// UploadOutcome 封面上传失败不影响视频创建，错误交给调用方记录
type UploadOutcome struct {
	Video        *model.Video
	ThumbnailErr error
}

// DeleteOutcome CDN清理失败不影响本地删除，错误交给调用方记录
type DeleteOutcome struct {
	CleanupErr error
}

type VideoService interface {
	ListVideos() ([]model.Video, error)
	ListChannelVideos(username string) ([]model.Video, error)
	GetVideoByID(videoID uint64) (*model.Video, error)
	// 同一会话只计一次，作者本人不计；计数成功时video.Views同步+1
	RecordView(sessionID string, viewerID uint64, video *model.Video) (bool, error)

	UploadVideo(ctx context.Context, in UploadVideoInput) (*UploadOutcome, error)
	DeleteVideo(ctx context.Context, ownerID, videoID uint64) (*DeleteOutcome, error)
}

type videoService struct {
	sf singleflight.Group

	videoRepo repository.VideoRepository
	viewRepo  repository.ViewRepository
	uploader  MediaUploader
	cleaner   FileCleaner
}

func NewVideoService(videoRepo repository.VideoRepository, viewRepo repository.ViewRepository, uploader MediaUploader, cleaner FileCleaner) VideoService {
	return &videoService{
		videoRepo: videoRepo,
		viewRepo:  viewRepo,
		uploader:  uploader,
		cleaner:   cleaner,
	}
}

func (s *videoService) ListVideos() ([]model.Video, error) {
	return s.videoRepo.FindAll()
}

func (s *videoService) ListChannelVideos(username string) ([]model.Video, error) {
	return s.videoRepo.FindByUsername(username)
}

// 根据videoID查找视频：仓库层先查Redis缓存，未命中时同一时间的并发请求通过SingleFlight合并成一次数据库查询
func (s *videoService) GetVideoByID(videoID uint64) (*model.Video, error) {
	key := fmt.Sprintf("get_video_%d", videoID)
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.videoRepo.FindByID(videoID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	// singleflight的结果是共享的，调用方会改Views，这里给一份拷贝
	video := *result.(*model.Video)
	return &video, nil
}

// 记录播放：1、作者本人不计 2、会话集合里已经有了不计 3、数据库views+1并清缓存
func (s *videoService) RecordView(sessionID string, viewerID uint64, video *model.Video) (bool, error) {
	if sessionID == "" || (viewerID != 0 && viewerID == video.UserID) {
		return false, nil
	}
	first, err := s.viewRepo.MarkViewed(sessionID, video.ID)
	if err != nil || !first {
		return false, err
	}
	if err := s.videoRepo.IncrementViews(video.ID); err != nil {
		return false, err
	}
	_ = s.videoRepo.DeleteVideoCache(video.ID)
	video.Views++
	metrics.ViewsCounted.Inc()
	return true, nil
}

// 上传视频：1、视频传到CDN，失败直接返回 2、有封面就传封面，失败只记录 3、落库
func (s *videoService) UploadVideo(ctx context.Context, in UploadVideoInput) (*UploadOutcome, error) {
	result, err := s.uploader.Upload(ctx, in.Data, in.FileName, cdn.FolderVideos)
	if err != nil {
		metrics.CDNRequests.WithLabelValues("upload", "error").Inc()
		metrics.Uploads.WithLabelValues("cdn_error").Inc()
		return nil, err
	}
	metrics.CDNRequests.WithLabelValues("upload", "ok").Inc()

	outcome := &UploadOutcome{}
	var thumbnailURL *string
	if in.ThumbnailData != "" {
		thumb, err := s.uploader.UploadThumbnail(ctx, in.ThumbnailData, thumbnailFileName(in.FileName))
		if err != nil {
			metrics.CDNRequests.WithLabelValues("upload", "error").Inc()
			outcome.ThumbnailErr = err
		} else {
			metrics.CDNRequests.WithLabelValues("upload", "ok").Inc()
			thumbnailURL = &thumb.URL
		}
	}

	video := &model.Video{
		UserID:       in.UserID,
		Title:        in.Title,
		Description:  in.Description,
		FileID:       result.FileID,
		VideoURL:     result.URL,
		ThumbnailURL: thumbnailURL,
	}
	if err := s.videoRepo.Create(video); err != nil {
		metrics.Uploads.WithLabelValues("db_error").Inc()
		// 本地没落库，CDN上的文件就成了孤儿，顺手清掉
		if cleanupErr := s.cleaner.Cleanup(ctx, result.FileID); cleanupErr != nil {
			logger.Log.WithError(cleanupErr).WithField("file_id", result.FileID).Warn("清理孤儿文件失败")
		}
		return nil, err
	}
	metrics.Uploads.WithLabelValues("ok").Inc()
	outcome.Video = video
	return outcome, nil
}

// 删除视频：1、只有作者能找到这条视频 2、尽力清理CDN文件 3、删库（投票级联删除）并清缓存
func (s *videoService) DeleteVideo(ctx context.Context, ownerID, videoID uint64) (*DeleteOutcome, error) {
	video, err := s.videoRepo.FindByIDAndOwner(videoID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	outcome := &DeleteOutcome{CleanupErr: s.cleaner.Cleanup(ctx, video.FileID)}

	if err := s.videoRepo.Delete(video.ID); err != nil {
		return nil, err
	}
	_ = s.videoRepo.DeleteVideoCache(video.ID)
	return outcome, nil
}

// clip.final.mp4 -> clip.final_thumbnail.png
func thumbnailFileName(videoFileName string) string {
	base := videoFileName
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base + "_thumbnail.png"
}
