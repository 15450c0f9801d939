package repository_test

import (
	"testing"
	"time"

	"Vista_Video/internal/repository"
	"Vista_Video/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewRepository_MarkViewed(t *testing.T) {
	rdb, mr := testutil.NewRedis(t)
	repo := repository.NewViewRepository(rdb, time.Hour)

	first, err := repo.MarkViewed("sess-1", 7)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := repo.MarkViewed("sess-1", 7)
	require.NoError(t, err)
	assert.False(t, again)

	other, err := repo.MarkViewed("sess-2", 7)
	require.NoError(t, err)
	assert.True(t, other)

	assert.Equal(t, time.Hour, mr.TTL("session:viewed:sess-1"))

	// 会话过期后重新计数
	mr.FastForward(2 * time.Hour)
	afterExpiry, err := repo.MarkViewed("sess-1", 7)
	require.NoError(t, err)
	assert.True(t, afterExpiry)
}
