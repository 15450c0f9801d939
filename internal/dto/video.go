package dto

import (
	"time"

	"Vista_Video/internal/media"
	"Vista_Video/internal/model"
)

type Owner struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

type VideoResponse struct {
	ID          uint64    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"video_url"`
	media.URLs
	Views    uint64 `json:"views"`
	Likes    uint64 `json:"likes"`
	Dislikes uint64 `json:"dislikes"`
	Owner    Owner  `json:"owner"`
}

// VideoDetailResponse 详情页多带一个当前用户的投票状态，未登录或没投过为null
type VideoDetailResponse struct {
	VideoResponse
	UserVote *int8 `json:"user_vote"`
}

// VoteResponse 投票接口的返回
type VoteResponse struct {
	Likes    uint64 `json:"likes"`
	Dislikes uint64 `json:"dislikes"`
	UserVote *int8  `json:"user_vote"`
}

// ToVideoResponse 把DB模型转换为API响应模型，地址统一由media包推导
func ToVideoResponse(video *model.Video) VideoResponse {
	resp := VideoResponse{
		ID:          video.ID,
		CreatedAt:   video.CreatedAt,
		Title:       video.Title,
		Description: video.Description,
		VideoURL:    video.VideoURL,
		URLs:        media.Resolve(video.ThumbnailURL, video.VideoURL),
		Views:       video.Views,
		Likes:       video.Likes,
		Dislikes:    video.Dislikes,
		Owner:       Owner{ID: video.UserID},
	}
	// 检查User是否被成功preload
	if video.User.ID != 0 {
		resp.Owner.Username = video.User.Username
	}
	return resp
}

func ToVideoResponses(videos []model.Video) []VideoResponse {
	out := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		out = append(out, ToVideoResponse(&videos[i]))
	}
	return out
}

// UserVoteValue 0表示没投票，返回nil
func UserVoteValue(status int8) *int8 {
	if status == 0 {
		return nil
	}
	return &status
}
