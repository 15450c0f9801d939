package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"Vista_Video/internal/cdn"
	"Vista_Video/internal/dto"
	"Vista_Video/internal/middleware"
	"Vista_Video/internal/service"
	"Vista_Video/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

// 页面接口先给JSON，浏览器带着Accept: text/html时渲染模板
var pageFormats = []string{binding.MIMEJSON, binding.MIMEHTML}

type VideoHandler interface {
	ListVideos(c *gin.Context)
	ChannelVideos(c *gin.Context)
	GetVideoByID(c *gin.Context)

	UploadPage(c *gin.Context)
	UploadVideo(c *gin.Context)
	DeleteVideo(c *gin.Context)
}

type videoHandler struct {
	VideoService   service.VideoService
	VoteService    service.VoteService
	maxUploadBytes int64
}

func NewVideoHandler(videoService service.VideoService, voteService service.VoteService, maxUploadBytes int64) VideoHandler {
	return &videoHandler{
		VideoService:   videoService,
		VoteService:    voteService,
		maxUploadBytes: maxUploadBytes,
	}
}

// UploadVideoForm multipart表单，字段名和网页表单一致
type UploadVideoForm struct {
	Title         string                `form:"title" binding:"required,max=200"`
	Description   string                `form:"description"`
	VideoFile     *multipart.FileHeader `form:"video_file" binding:"required"`
	ThumbnailData string                `form:"thumbnail_data"`
}

// 视频列表：按上传时间倒序
func (h *videoHandler) ListVideos(c *gin.Context) {
	// 攻击溯源，用户分析，问题排查
	logCtx := logger.Log.WithField("ip", c.ClientIP())

	videos, err := h.VideoService.ListVideos()
	if err != nil {
		logCtx.WithError(err).Error("获取视频列表失败")
		sendErrorResponse(c, http.StatusInternalServerError, "获取视频列表失败")
		return
	}

	response := dto.ToVideoResponses(videos)
	logCtx.WithField("count", len(response)).Debug("成功获取视频列表")
	c.Negotiate(http.StatusOK, gin.Negotiate{
		Offered:  pageFormats,
		HTMLName: "list.html",
		HTMLData: gin.H{"Videos": response, "Username": middleware.CurrentUsername(c)},
		JSONData: gin.H{"success": true, "data": response},
	})
}

// 频道页：某个用户上传的视频，用户不存在时返回空列表
func (h *videoHandler) ChannelVideos(c *gin.Context) {
	username := c.Param("username")
	logCtx := logger.Log.WithField("channel", username)

	videos, err := h.VideoService.ListChannelVideos(username)
	if err != nil {
		logCtx.WithError(err).Error("获取频道视频失败")
		sendErrorResponse(c, http.StatusInternalServerError, "获取频道视频失败")
		return
	}

	response := dto.ToVideoResponses(videos)
	c.Negotiate(http.StatusOK, gin.Negotiate{
		Offered:  pageFormats,
		HTMLName: "channel.html",
		HTMLData: gin.H{"Channel": username, "Videos": response, "Username": middleware.CurrentUsername(c)},
		JSONData: gin.H{"success": true, "channel": username, "data": response},
	})
}

// 视频详情：1、查视频 2、按会话计播放量，失败只记日志 3、登录用户带上自己的投票状态
func (h *videoHandler) GetVideoByID(c *gin.Context) {
	videoID, ok := parseVideoID(c)
	if !ok {
		return
	}
	logCtx := logger.Log.WithField("video_id", videoID)

	video, err := h.VideoService.GetVideoByID(videoID)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			sendErrorResponse(c, http.StatusNotFound, "视频不存在")
			return
		}
		logCtx.WithError(err).Error("查找视频失败")
		sendErrorResponse(c, http.StatusInternalServerError, "查找视频失败")
		return
	}

	viewerID, loggedIn := middleware.CurrentUserID(c)
	if _, err := h.VideoService.RecordView(middleware.SessionID(c), viewerID, video); err != nil {
		logCtx.WithError(err).Warn("记录播放量失败")
	}

	response := dto.VideoDetailResponse{VideoResponse: dto.ToVideoResponse(video)}
	if loggedIn {
		status, err := h.VoteService.UserVote(viewerID, videoID)
		if err != nil {
			logCtx.WithError(err).Warn("查询投票状态失败")
		}
		response.UserVote = dto.UserVoteValue(int8(status))
	}

	c.Negotiate(http.StatusOK, gin.Negotiate{
		Offered:  pageFormats,
		HTMLName: "detail.html",
		HTMLData: gin.H{
			"Video":    response,
			"IsOwner":  loggedIn && viewerID == video.UserID,
			"Username": middleware.CurrentUsername(c),
		},
		JSONData: gin.H{"success": true, "data": response},
	})
}

func (h *videoHandler) UploadPage(c *gin.Context) {
	c.Negotiate(http.StatusOK, gin.Negotiate{
		Offered:  pageFormats,
		HTMLName: "upload.html",
		HTMLData: gin.H{"Username": middleware.CurrentUsername(c), "MaxUploadMB": h.maxUploadBytes >> 20},
		JSONData: gin.H{"success": true, "max_upload_bytes": h.maxUploadBytes},
	})
}

// 上传视频：1、表单校验 2、读出文件内容 3、service层上传CDN并落库 4、封面失败只记日志
func (h *videoHandler) UploadVideo(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}
	logCtx := logger.Log.WithField("user_id", userID)

	var form UploadVideoForm
	if err := c.ShouldBind(&form); err != nil {
		logCtx.WithError(err).Info("上传表单校验失败")
		sendValidationError(c, toValidationError(err))
		return
	}
	if form.VideoFile.Size > h.maxUploadBytes {
		sendValidationError(c, &service.ValidationError{Fields: []service.FieldError{{
			Field:   "video_file",
			Message: fmt.Sprintf("File too large. Maximum size is %d MB.", h.maxUploadBytes>>20),
		}}})
		return
	}

	content, err := readUpload(form.VideoFile)
	if err != nil {
		logCtx.WithError(err).Error("读取上传文件失败")
		sendErrorResponse(c, http.StatusBadRequest, "无法读取上传的文件")
		return
	}

	fileName := uploadFileName(form.VideoFile.Filename)
	logCtx = logCtx.WithField("file_name", fileName)
	logCtx.Info("开始处理上传视频请求")

	outcome, err := h.VideoService.UploadVideo(c.Request.Context(), service.UploadVideoInput{
		UserID:        userID,
		Title:         form.Title,
		Description:   form.Description,
		FileName:      fileName,
		Data:          content,
		ThumbnailData: form.ThumbnailData,
	})
	if err != nil {
		logCtx.WithError(err).Error("上传视频失败")
		if errors.Is(err, cdn.ErrExternalService) {
			sendErrorResponse(c, http.StatusBadGateway, err.Error())
			return
		}
		sendErrorResponse(c, http.StatusInternalServerError, "上传视频失败")
		return
	}
	if outcome.ThumbnailErr != nil {
		logCtx.WithError(outcome.ThumbnailErr).WithField("video_id", outcome.Video.ID).Warn("封面上传失败，使用视频帧作为封面")
	}

	logCtx.WithField("video_id", outcome.Video.ID).Info("视频上传成功")
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"video_id": outcome.Video.ID,
		"message":  "Your video is uploaded successfully.",
	})
}

// 删除视频：只有作者能删，CDN清理失败只记日志
func (h *videoHandler) DeleteVideo(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}
	videoID, ok := parseVideoID(c)
	if !ok {
		return
	}
	logCtx := logger.Log.WithField("user_id", userID).WithField("video_id", videoID)

	outcome, err := h.VideoService.DeleteVideo(c.Request.Context(), userID, videoID)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			sendErrorResponse(c, http.StatusNotFound, "视频不存在")
			return
		}
		logCtx.WithError(err).Error("删除视频失败")
		sendErrorResponse(c, http.StatusInternalServerError, "删除视频失败")
		return
	}
	if outcome.CleanupErr != nil {
		logCtx.WithError(outcome.CleanupErr).Warn("CDN文件清理失败，本地记录已删除")
	}

	logCtx.Info("视频删除成功")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "video deleted"})
}

func parseVideoID(c *gin.Context) (uint64, bool) {
	videoID, err := strconv.ParseUint(c.Param("video_id"), 10, 64)
	if err != nil || videoID == 0 {
		sendErrorResponse(c, http.StatusNotFound, "视频不存在")
		return 0, false
	}
	return videoID, true
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// 客户端给的文件名只取最后一段，取不到就用uuid
func uploadFileName(name string) string {
	base := filepath.Base(name)
	if base == "." || base == "/" || base == "" {
		return uuid.NewString() + ".mp4"
	}
	return base
}
