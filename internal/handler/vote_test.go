package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"Vista_Video/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newVoteRouter(svc service.VoteService, userID uint64) *gin.Engine {
	r := gin.New()
	r.POST("/videos/:video_id/vote/", withIdentity(userID, ""), NewVoteHandler(svc).Vote)
	return r
}

func voteRequest(videoID, vote string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/videos/"+videoID+"/vote/", strings.NewReader(url.Values{"vote": {vote}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestVoteHandler(t *testing.T) {
	cases := []struct {
		name   string
		vote   string
		result *service.VoteResult
		err    error
		code   int
		body   string
	}{
		{"liked", "like", &service.VoteResult{Likes: 1, UserVote: service.VoteLiked}, nil, http.StatusOK, `{"likes":1,"dislikes":0,"user_vote":1}`},
		{"disliked", "dislike", &service.VoteResult{Likes: 3, Dislikes: 2, UserVote: service.VoteDisliked}, nil, http.StatusOK, `{"likes":3,"dislikes":2,"user_vote":-1}`},
		{"toggled off", "like", &service.VoteResult{}, nil, http.StatusOK, `{"likes":0,"dislikes":0,"user_vote":null}`},
		{"invalid", "up", nil, service.ErrInvalidVote, http.StatusBadRequest, `{"success":false,"error":"Invalid vote"}`},
		{"missing video", "like", nil, service.ErrVideoNotFound, http.StatusNotFound, `{"success":false,"error":"视频不存在"}`},
		{"conflict", "like", nil, service.ErrVoteConflict, http.StatusConflict, `{"success":false,"error":"vote conflict, please retry"}`},
		{"db down", "like", nil, errors.New("db down"), http.StatusInternalServerError, `{"success":false,"error":"投票失败"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockVoteService{}
			svc.On("Vote", uint64(7), uint64(3), tc.vote).Return(tc.result, tc.err)

			w := perform(t, newVoteRouter(svc, 7), voteRequest("3", tc.vote))
			assert.Equal(t, tc.code, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestVoteHandler_JSONBody(t *testing.T) {
	svc := &mockVoteService{}
	svc.On("Vote", uint64(7), uint64(3), "dislike").Return(&service.VoteResult{Dislikes: 1, UserVote: service.VoteDisliked}, nil)

	req := httptest.NewRequest(http.MethodPost, "/videos/3/vote/", strings.NewReader(`{"vote":"dislike"}`))
	req.Header.Set("Content-Type", "application/json")
	w := perform(t, newVoteRouter(svc, 7), req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"likes":0,"dislikes":1,"user_vote":-1}`, w.Body.String())
}

func TestVoteHandler_Unauthenticated(t *testing.T) {
	svc := &mockVoteService{}
	w := perform(t, newVoteRouter(svc, 0), voteRequest("3", "like"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "Vote", mock.Anything, mock.Anything, mock.Anything)
}

func TestVoteHandler_BadVideoID(t *testing.T) {
	svc := &mockVoteService{}
	w := perform(t, newVoteRouter(svc, 7), voteRequest("abc", "like"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertNotCalled(t, "Vote", mock.Anything, mock.Anything, mock.Anything)
}
