package api

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/KayTee1/E-commerce/internal/api/dto"
	"github.com/KayTee1/E-commerce/internal/config"
	"github.com/KayTee1/E-commerce/internal/model"
)

// ==================== 客户端 ====================

// Client 市场 API 客户端
// 统一封装鉴权头、超时与重试，是全部对外请求的入口
type Client struct {
	http  *resty.Client
	creds config.AuthConfig

	mu    sync.RWMutex
	token string
}

// NewClient 创建客户端
func NewClient(cfg config.APIConfig, creds config.AuthConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetHeader("User-Agent", "Market-Go-App/1.0")

	return &Client{
		http:  httpClient,
		creds: creds,
	}
}

// SetToken 设置 Bearer Token
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token 当前 Bearer Token
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// AuthExpiry 解析当前 Token 的过期时间
// 只读取 exp 声明，不做签名校验（校验是后端的职责）
func (c *Client) AuthExpiry() (time.Time, error) {
	token := c.Token()
	if token == "" {
		return time.Time{}, fmt.Errorf("no token set")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse token: %v", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("token has no exp claim")
	}
	return exp.Time, nil
}

// ==================== 鉴权 ====================

// Login 登录并保存 Token
func (c *Client) Login(ctx context.Context, username, password string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(dto.LoginRequest{Username: username, Password: password}).
		SetResult(&out).
		Post("/api/users/login")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("login failed [%d]: %s", resp.StatusCode(), resp.String())
	}

	c.SetToken(out.Token)
	return &out, nil
}

// Register 注册新用户
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/api/users/register")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("register failed [%d]: %s", resp.StatusCode(), resp.String())
	}
	return &out, nil
}

// Renew 用配置的凭据重新登录（Token 保活任务调用）
func (c *Client) Renew(ctx context.Context) error {
	if c.creds.Username == "" {
		return fmt.Errorf("no credentials configured")
	}
	_, err := c.Login(ctx, c.creds.Username, c.creds.Password)
	return err
}

// ==================== 分类 ====================

// Categories 拉取全部已知分类
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/categories")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch categories failed [%d]: %s", resp.StatusCode(), resp.String())
	}
	return out, nil
}

// CreateCategory 创建分类（需要鉴权）
// 非 2xx 视为创建失败
func (c *Client) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	var out model.Category
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.Token()).
		SetBody(dto.CreateCategoryRequest{Name: name}).
		SetResult(&out).
		Post("/api/categories")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("create category %q failed [%d]: %s", name, resp.StatusCode(), resp.String())
	}
	return &out, nil
}

// ==================== 商品 ====================

// Products 拉取商品列表
// category 非空时按分类过滤
func (c *Client) Products(ctx context.Context, category string) ([]model.Listing, error) {
	req := c.http.R().SetContext(ctx)
	if category != "" {
		req.SetQueryParam("category", category)
	}

	var out []model.Listing
	resp, err := req.SetResult(&out).Get("/api/products")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch products failed [%d]: %s", resp.StatusCode(), resp.String())
	}
	return out, nil
}

// Product 获取单个商品
func (c *Client) Product(ctx context.Context, id string) (*model.Listing, error) {
	var out model.Listing
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/products/" + id)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch product %s failed [%d]: %s", id, resp.StatusCode(), resp.String())
	}
	return &out, nil
}

// PostListing 提交新商品
// 后端以 {success, message} 回执；拒绝时 message 原样透传给表单
func (c *Client) PostListing(ctx context.Context, payload *dto.ListingPayload) (*model.SubmitResult, error) {
	return c.submitListing(ctx, resty.MethodPost, "/api/products", payload)
}

// EditListing 编辑已有商品
func (c *Client) EditListing(ctx context.Context, id string, payload *dto.ListingPayload) (*model.SubmitResult, error) {
	return c.submitListing(ctx, resty.MethodPut, "/api/products/"+id, payload)
}

func (c *Client) submitListing(ctx context.Context, method, url string, payload *dto.ListingPayload) (*model.SubmitResult, error) {
	var out model.SubmitResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.Token()).
		SetBody(payload).
		SetResult(&out).
		SetError(&out).
		Execute(method, url)
	if err != nil {
		return nil, err
	}

	// 后端拒绝但没有给出结构化回执时升级为错误，由上层兜底文案处理
	if resp.IsError() && out.Message == "" {
		return nil, fmt.Errorf("submit listing failed [%d]: %s", resp.StatusCode(), resp.String())
	}
	return &out, nil
}

// ==================== 订单 ====================

// PlaceOrder 提交结算订单（需要鉴权）
func (c *Client) PlaceOrder(ctx context.Context, payload *dto.OrderPayload) (*model.SubmitResult, error) {
	var out model.SubmitResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.Token()).
		SetBody(payload).
		SetResult(&out).
		SetError(&out).
		Post("/api/orders")
	if err != nil {
		return nil, err
	}
	if resp.IsError() && out.Message == "" {
		return nil, fmt.Errorf("place order failed [%d]: %s", resp.StatusCode(), resp.String())
	}
	return &out, nil
}
