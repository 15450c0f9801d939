package service

import (
	"testing"

	"Vista_Video/internal/metrics"
	"Vista_Video/internal/testutil"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteService_RecordsTransitions(t *testing.T) {
	f := newVoteFixture(t)
	viewer := testutil.CreateUser(t, f.db, "viewer")
	liked := metrics.VoteTransitions.WithLabelValues("none", "liked")
	switched := metrics.VoteTransitions.WithLabelValues("liked", "disliked")
	beforeLiked, beforeSwitched := promtest.ToFloat64(liked), promtest.ToFloat64(switched)

	_, err := f.svc.Vote(viewer.ID, f.video.ID, "like")
	require.NoError(t, err)
	_, err = f.svc.Vote(viewer.ID, f.video.ID, "dislike")
	require.NoError(t, err)

	assert.Equal(t, beforeLiked+1, promtest.ToFloat64(liked))
	assert.Equal(t, beforeSwitched+1, promtest.ToFloat64(switched))
}
