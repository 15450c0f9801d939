package service

import "Vista_Video/internal/model"

// VoteStatus 一个用户对一个视频的投票状态，取值和votes.value一致，0表示没投
type VoteStatus int8

const (
	VoteNone     VoteStatus = 0
	VoteLiked    VoteStatus = VoteStatus(model.VoteLike)
	VoteDisliked VoteStatus = VoteStatus(model.VoteDislike)
)

func (s VoteStatus) String() string {
	switch s {
	case VoteLiked:
		return "liked"
	case VoteDisliked:
		return "disliked"
	default:
		return "none"
	}
}

// VoteOp 对votes表要做的写操作
type VoteOp int

const (
	VoteOpNone VoteOp = iota
	VoteOpCreate
	VoteOpUpdate
	VoteOpDelete
)

type VoteTransition struct {
	From          VoteStatus
	To            VoteStatus
	Op            VoteOp
	LikesDelta    int
	DislikesDelta int
}

// ParseVoteAction 只认 "like" 和 "dislike"
func ParseVoteAction(action string) (VoteStatus, error) {
	switch action {
	case "like":
		return VoteLiked, nil
	case "dislike":
		return VoteDisliked, nil
	default:
		return VoteNone, ErrInvalidVote
	}
}

// NextVoteState 状态机：没投过就新建；投了同样的票就取消；投了相反的票就改票
func NextVoteState(current, requested VoteStatus) VoteTransition {
	t := VoteTransition{From: current, To: current}
	if requested != VoteLiked && requested != VoteDisliked {
		return t
	}

	switch current {
	case VoteNone:
		t.To = requested
		t.Op = VoteOpCreate
		t.addCount(requested, 1)
	case requested:
		t.To = VoteNone
		t.Op = VoteOpDelete
		t.addCount(requested, -1)
	default:
		t.To = requested
		t.Op = VoteOpUpdate
		t.addCount(current, -1)
		t.addCount(requested, 1)
	}
	return t
}

func (t *VoteTransition) addCount(s VoteStatus, delta int) {
	if s == VoteLiked {
		t.LikesDelta += delta
	} else {
		t.DislikesDelta += delta
	}
}

// 计数器不会减到0以下
func applyDelta(count uint64, delta int) uint64 {
	if delta < 0 && uint64(-delta) > count {
		return 0
	}
	return uint64(int64(count) + int64(delta))
}
