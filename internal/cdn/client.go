// Package cdn 是媒体CDN（ImageKit）的客户端，只负责上传和删除文件
// 地址推导（封面、播放地址）不需要网络请求，见 internal/media
package cdn

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	FolderVideos     = "videos"
	FolderThumbnails = "thumbnails"
)

// ErrExternalService 所有CDN调用失败都包着它，调用方用errors.Is判断
var ErrExternalService = errors.New("cdn request failed")

// Config 进程启动时构造一次，不再从全局环境变量里读密钥
type Config struct {
	PrivateKey  string
	PublicKey   string
	URLEndpoint string
	UploadURL   string // https://upload.imagekit.io/api/v1/files/upload
	APIURL      string // https://api.imagekit.io/v1
	Timeout     time.Duration
	RateLimit   float64
}

type UploadResult struct {
	FileID string `json:"fileId"`
	URL    string `json:"url"`
}

// Client 上传和删除只尝试一次，不重试；限流器只是给出站请求排队
type Client struct {
	cfg         Config
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	return &Client{
		cfg:         cfg,
		rateLimiter: rate.NewLimiter(limit, 1),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type errorBody struct {
	Message string `json:"message"`
}

// Upload 上传文件：1、拼multipart表单 2、私钥做Basic认证 3、解析返回的fileId和url
func (c *Client) Upload(ctx context.Context, data []byte, fileName, folder string) (*UploadResult, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"fileName":          fileName,
		"folder":            folder,
		"useUniqueFileName": "true",
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.UploadURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: upload %s: %v", ErrExternalService, fileName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: upload %s: %s", ErrExternalService, fileName, readError(resp))
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode upload response: %v", ErrExternalService, err)
	}
	if result.FileID == "" || result.URL == "" {
		return nil, fmt.Errorf("%w: upload response missing fileId or url", ErrExternalService)
	}
	return &result, nil
}

// UploadThumbnail 封面是前端传来的base64，可能带data:前缀，先解码再上传
func (c *Client) UploadThumbnail(ctx context.Context, payload, fileName string) (*UploadResult, error) {
	data, err := DecodeThumbnail(payload)
	if err != nil {
		return nil, err
	}
	return c.Upload(ctx, data, fileName, FolderThumbnails)
}

func (c *Client) Delete(ctx context.Context, fileID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.cfg.APIURL+"/files/"+fileID, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrExternalService, fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: delete %s: %s", ErrExternalService, fileID, readError(resp))
	}
	return nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	if err := c.rateLimiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	// ImageKit的私钥作为用户名，密码留空
	req.SetBasicAuth(c.cfg.PrivateKey, "")
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}

func readError(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var e errorBody
	if json.Unmarshal(raw, &e) == nil && e.Message != "" {
		return fmt.Sprintf("status %d: %s", resp.StatusCode, e.Message)
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}
