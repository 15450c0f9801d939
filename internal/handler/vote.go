package handler

import (
	"errors"
	"net/http"

	"Vista_Video/internal/dto"
	"Vista_Video/internal/middleware"
	"Vista_Video/internal/service"
	"Vista_Video/pkg/logger"

	"github.com/gin-gonic/gin"
)

type VoteHandler interface {
	Vote(c *gin.Context)
}

type voteHandler struct {
	VoteService service.VoteService
}

func NewVoteHandler(voteService service.VoteService) VoteHandler {
	return &voteHandler{VoteService: voteService}
}

// VoteRequest 表单和JSON都可以，vote只能是like或dislike，由service层校验
type VoteRequest struct {
	Vote string `form:"vote" json:"vote"`
}

// 投票：1、取出vote字段 2、service层在一个事务里完成状态迁移 3、返回新的计数器和当前状态
func (h *voteHandler) Vote(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}
	videoID, ok := parseVideoID(c)
	if !ok {
		return
	}

	var req VoteRequest
	if err := c.ShouldBind(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, service.ErrInvalidVote.Error())
		return
	}

	logCtx := logger.Log.WithField("user_id", userID).WithField("video_id", videoID)

	result, err := h.VoteService.Vote(userID, videoID, req.Vote)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidVote):
			sendErrorResponse(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrVideoNotFound):
			sendErrorResponse(c, http.StatusNotFound, "视频不存在")
		case errors.Is(err, service.ErrVoteConflict):
			logCtx.WithError(err).Warn("并发投票冲突")
			sendErrorResponse(c, http.StatusConflict, err.Error())
		default:
			logCtx.WithError(err).Error("投票失败")
			sendErrorResponse(c, http.StatusInternalServerError, "投票失败")
		}
		return
	}

	logCtx.WithField("user_vote", result.UserVote.String()).Debug("投票成功")
	c.JSON(http.StatusOK, dto.VoteResponse{
		Likes:    result.Likes,
		Dislikes: result.Dislikes,
		UserVote: dto.UserVoteValue(int8(result.UserVote)),
	})
}
