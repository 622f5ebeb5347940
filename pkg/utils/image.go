package utils

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ImageProbe 图片地址探测器
// 校验 URL 语法并实际请求一次，确认返回的是可加载的图片资源
type ImageProbe struct {
	client *http.Client
}

// NewImageProbe 创建探测器
func NewImageProbe(timeout time.Duration) *ImageProbe {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ImageProbe{
		client: &http.Client{Timeout: timeout},
	}
}

// ProbeImage 探测图片 URL
// 要求：http/https 绝对地址、响应 2xx、Content-Type 为 image/*
func (p *ImageProbe) ProbeImage(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("malformed url: %v", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("not an absolute http url: %s", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("image not reachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("image fetch failed with status: %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("not an image resource: %s", contentType)
	}

	return nil
}
