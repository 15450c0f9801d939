package service

import (
	"Vista_Video/internal/data"
	"Vista_Video/internal/metrics"
	"Vista_Video/internal/model"
	"Vista_Video/internal/repository"
	"Vista_Video/pkg/logger"
	"errors"

	"gorm.io/gorm"
)

// VoteResult 投票后的计数器和当前用户的状态
type VoteResult struct {
	Likes    uint64
	Dislikes uint64
	UserVote VoteStatus
}

type VoteService interface {
	// action 只能是 "like" / "dislike"
	Vote(userID, videoID uint64, action string) (*VoteResult, error)
	UserVote(userID, videoID uint64) (VoteStatus, error)
	// 按votes表重算视频的赞踩数
	Recount(videoID uint64) (repository.VoteCounts, error)
}

type voteService struct {
	voteRepo  repository.VoteRepository
	videoRepo repository.VideoRepository
	uow       data.UnitOfWork
}

func NewVoteService(voteRepo repository.VoteRepository, videoRepo repository.VideoRepository, uow data.UnitOfWork) VoteService {
	return &voteService{
		voteRepo:  voteRepo,
		videoRepo: videoRepo,
		uow:       uow,
	}
}

// 投票：1、校验action，非法直接返回，不碰数据库 2、事务里锁住视频行，读出已有的票
// 3、状态机算出迁移，改votes表并写回计数器 4、提交后清缓存
func (s *voteService) Vote(userID, videoID uint64, action string) (*VoteResult, error) {
	requested, err := ParseVoteAction(action)
	if err != nil {
		return nil, err
	}

	var result VoteResult
	var transition VoteTransition
	err = s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		video, err := repos.VideoRepo.FindByIDForUpdate(videoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVideoNotFound
			}
			return err
		}
		existing, err := repos.VoteRepo.FindByUserAndVideo(userID, videoID)
		if err != nil {
			return err
		}
		current := VoteNone
		if existing != nil {
			current = VoteStatus(existing.Value)
		}

		transition = NextVoteState(current, requested)
		switch transition.Op {
		case VoteOpCreate:
			err = repos.VoteRepo.Create(&model.Vote{UserID: userID, VideoID: videoID, Value: int8(transition.To)})
		case VoteOpUpdate:
			err = repos.VoteRepo.UpdateValue(existing.ID, int8(transition.To))
		case VoteOpDelete:
			err = repos.VoteRepo.Delete(existing.ID)
		}
		if err != nil {
			if isDuplicateKey(err) {
				return ErrVoteConflict
			}
			return err
		}

		result.Likes = applyDelta(video.Likes, transition.LikesDelta)
		result.Dislikes = applyDelta(video.Dislikes, transition.DislikesDelta)
		result.UserVote = transition.To
		return repos.VideoRepo.UpdateVoteCounts(videoID, result.Likes, result.Dislikes)
	})
	if err != nil {
		return nil, err
	}

	if err := s.videoRepo.DeleteVideoCache(videoID); err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("清除视频缓存失败")
	}
	metrics.VoteTransitions.WithLabelValues(transition.From.String(), transition.To.String()).Inc()
	return &result, nil
}

func (s *voteService) UserVote(userID, videoID uint64) (VoteStatus, error) {
	vote, err := s.voteRepo.FindByUserAndVideo(userID, videoID)
	if err != nil {
		return VoteNone, err
	}
	if vote == nil {
		return VoteNone, nil
	}
	return VoteStatus(vote.Value), nil
}

func (s *voteService) Recount(videoID uint64) (repository.VoteCounts, error) {
	var counts repository.VoteCounts
	err := s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		if _, err := repos.VideoRepo.FindByIDForUpdate(videoID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVideoNotFound
			}
			return err
		}
		var err error
		counts, err = repos.VoteRepo.CountByVideo(videoID)
		if err != nil {
			return err
		}
		return repos.VideoRepo.UpdateVoteCounts(videoID, counts.Likes, counts.Dislikes)
	})
	if err != nil {
		return repository.VoteCounts{}, err
	}
	_ = s.videoRepo.DeleteVideoCache(videoID)
	return counts, nil
}
