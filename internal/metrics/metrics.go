// Package metrics 放进程内的Prometheus计数器，/metrics路由负责暴露
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VoteTransitions 按状态迁移计数，from/to 取值 none/liked/disliked
	VoteTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vista_vote_transitions_total",
		Help: "Vote state transitions applied.",
	}, []string{"from", "to"})

	ViewsCounted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vista_video_views_counted_total",
		Help: "Detail page views that incremented a view counter.",
	})

	Uploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vista_video_uploads_total",
		Help: "Video uploads by result.",
	}, []string{"result"})

	// CDNRequests 按操作和结果计数，operation 取值 upload/delete
	CDNRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vista_cdn_requests_total",
		Help: "Calls made to the media CDN.",
	}, []string{"operation", "result"})
)
