package handler

import (
	"context"

	"Vista_Video/internal/model"
	"Vista_Video/internal/repository"
	"Vista_Video/internal/service"

	"github.com/stretchr/testify/mock"
)

type mockVideoService struct {
	mock.Mock
}

func (m *mockVideoService) ListVideos() ([]model.Video, error) {
	args := m.Called()
	videos, _ := args.Get(0).([]model.Video)
	return videos, args.Error(1)
}

func (m *mockVideoService) ListChannelVideos(username string) ([]model.Video, error) {
	args := m.Called(username)
	videos, _ := args.Get(0).([]model.Video)
	return videos, args.Error(1)
}

func (m *mockVideoService) GetVideoByID(videoID uint64) (*model.Video, error) {
	args := m.Called(videoID)
	video, _ := args.Get(0).(*model.Video)
	return video, args.Error(1)
}

func (m *mockVideoService) RecordView(sessionID string, viewerID uint64, video *model.Video) (bool, error) {
	args := m.Called(sessionID, viewerID, video)
	return args.Bool(0), args.Error(1)
}

func (m *mockVideoService) UploadVideo(ctx context.Context, in service.UploadVideoInput) (*service.UploadOutcome, error) {
	args := m.Called(ctx, in)
	outcome, _ := args.Get(0).(*service.UploadOutcome)
	return outcome, args.Error(1)
}

func (m *mockVideoService) DeleteVideo(ctx context.Context, ownerID, videoID uint64) (*service.DeleteOutcome, error) {
	args := m.Called(ctx, ownerID, videoID)
	outcome, _ := args.Get(0).(*service.DeleteOutcome)
	return outcome, args.Error(1)
}

type mockVoteService struct {
	mock.Mock
}

func (m *mockVoteService) Vote(userID, videoID uint64, action string) (*service.VoteResult, error) {
	args := m.Called(userID, videoID, action)
	result, _ := args.Get(0).(*service.VoteResult)
	return result, args.Error(1)
}

func (m *mockVoteService) UserVote(userID, videoID uint64) (service.VoteStatus, error) {
	args := m.Called(userID, videoID)
	return args.Get(0).(service.VoteStatus), args.Error(1)
}

func (m *mockVoteService) Recount(videoID uint64) (repository.VoteCounts, error) {
	args := m.Called(videoID)
	return args.Get(0).(repository.VoteCounts), args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(username, password string) (*model.User, error) {
	args := m.Called(username, password)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserService) Login(username, password string) (string, error) {
	args := m.Called(username, password)
	return args.String(0), args.Error(1)
}
