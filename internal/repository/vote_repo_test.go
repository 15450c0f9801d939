package repository_test

import (
	"testing"

	"Vista_Video/internal/model"
	"Vista_Video/internal/repository"
	"Vista_Video/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestVoteRepository_CRUD(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewVoteRepository(db)
	alice := testutil.CreateUser(t, db, "alice")
	video := testutil.CreateVideo(t, db, alice, "clip")

	got, err := repo.FindByUserAndVideo(alice.ID, video.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	vote := &model.Vote{UserID: alice.ID, VideoID: video.ID, Value: model.VoteLike}
	require.NoError(t, repo.Create(vote))

	require.NoError(t, repo.UpdateValue(vote.ID, model.VoteDislike))
	got, err = repo.FindByUserAndVideo(alice.ID, video.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.VoteDislike, got.Value)

	require.NoError(t, repo.Delete(vote.ID))
	got, err = repo.FindByUserAndVideo(alice.ID, video.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestVoteRepository_UniquePerUserAndVideo(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewVoteRepository(db)
	alice := testutil.CreateUser(t, db, "alice")
	video := testutil.CreateVideo(t, db, alice, "clip")

	require.NoError(t, repo.Create(&model.Vote{UserID: alice.ID, VideoID: video.ID, Value: model.VoteLike}))
	err := repo.Create(&model.Vote{UserID: alice.ID, VideoID: video.ID, Value: model.VoteDislike})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestVoteRepository_CountByVideo(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewVoteRepository(db)
	owner := testutil.CreateUser(t, db, "owner")
	video := testutil.CreateVideo(t, db, owner, "clip")
	other := testutil.CreateVideo(t, db, owner, "other")

	values := []int8{model.VoteLike, model.VoteLike, model.VoteDislike}
	for i, v := range values {
		u := testutil.CreateUser(t, db, "voter"+string(rune('a'+i)))
		require.NoError(t, repo.Create(&model.Vote{UserID: u.ID, VideoID: video.ID, Value: v}))
		require.NoError(t, repo.Create(&model.Vote{UserID: u.ID, VideoID: other.ID, Value: model.VoteDislike}))
	}

	counts, err := repo.CountByVideo(video.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.VoteCounts{Likes: 2, Dislikes: 1}, counts)

	counts, err = repo.CountByVideo(9999)
	require.NoError(t, err)
	assert.Equal(t, repository.VoteCounts{}, counts)
}
