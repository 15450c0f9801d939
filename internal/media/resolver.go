// Package media 负责从CDN地址推导出页面上要用的各种地址，全部是纯字符串变换，不发网络请求
package media

import (
	"fmt"
	"strings"
)

const (
	DefaultThumbnailWidth  = 480
	DefaultThumbnailHeight = 270
)

// URLs 是一个视频在页面上需要的全部地址
type URLs struct {
	DisplayThumbnail   string `json:"display_thumbnail_url"`
	GeneratedThumbnail string `json:"generated_thumbnail_url"`
	Streaming          string `json:"streaming_url"`
	Optimized          string `json:"optimized_url"`
}

// Resolve 一次性算出所有地址，thumbnailURL为nil或空串时封面退回到视频帧
func Resolve(thumbnailURL *string, videoURL string) URLs {
	stored := ""
	if thumbnailURL != nil {
		stored = *thumbnailURL
	}
	return URLs{
		DisplayThumbnail:   DisplayThumbnail(stored, videoURL),
		GeneratedThumbnail: GeneratedThumbnail(videoURL),
		Streaming:          StreamingURL(videoURL),
		Optimized:          OptimizedURL(videoURL),
	}
}

// DisplayThumbnail 有自定义封面就用自定义封面，否则用视频第一帧
func DisplayThumbnail(thumbnailURL, videoURL string) string {
	if thumbnailURL != "" {
		return thumbnailURL
	}
	return GeneratedThumbnail(videoURL)
}

func GeneratedThumbnail(videoURL string) string {
	return GeneratedThumbnailSized(videoURL, DefaultThumbnailWidth, DefaultThumbnailHeight)
}

// GeneratedThumbnailSized 追加CDN的抽帧参数：epage-0取第一帧，c-at居中裁剪，q-80画质
// 原地址已经带查询串时用&拼接
func GeneratedThumbnailSized(videoURL string, width, height int) string {
	if videoURL == "" {
		return ""
	}
	sep := "?"
	if strings.Contains(videoURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%str=epage-0,w-%d,h-%d,c-at,q-80", videoURL, sep, width, height)
}

// StreamingURL CDN自己处理流式传输，直接用原地址
func StreamingURL(videoURL string) string {
	return videoURL
}

// OptimizedURL 原样返回。带变换参数的视频地址可能被CDN的访问策略拒绝(403)
func OptimizedURL(videoURL string) string {
	return videoURL
}
