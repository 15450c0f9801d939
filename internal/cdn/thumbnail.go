package cdn

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidThumbnail = errors.New("invalid thumbnail data")

// DecodeThumbnail 支持两种格式：裸base64，或者 data:image/png;base64,xxxx
func DecodeThumbnail(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "data:") {
		_, after, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, ErrInvalidThumbnail
		}
		payload = after
	}
	if payload == "" {
		return nil, ErrInvalidThumbnail
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.Join(ErrInvalidThumbnail, err)
	}
	return data, nil
}
