package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KayTee1/E-commerce/internal/api"
	"github.com/KayTee1/E-commerce/internal/api/dto"
	"github.com/KayTee1/E-commerce/internal/config"
	"github.com/KayTee1/E-commerce/internal/controller"
	"github.com/KayTee1/E-commerce/internal/middleware"
	"github.com/KayTee1/E-commerce/internal/model"
	"github.com/KayTee1/E-commerce/internal/repository"
	"github.com/KayTee1/E-commerce/internal/router"
	"github.com/KayTee1/E-commerce/internal/service"
	"github.com/KayTee1/E-commerce/pkg/database"
	"github.com/KayTee1/E-commerce/pkg/utils"
)

// 端到端集成测试
// 用内存库 + 完整路由拉起模拟后端，真实客户端走完
// 注册 → 登录 → 提交（校验/分类对账/落库）→ 浏览 → 编辑 → 下单 的全链路

// ==================== 测试环境 ====================

type testEnv struct {
	client     *api.Client
	listingSvc *service.ListingService
	catSvc     *service.CategoryService
	imageURL   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// 模拟后端
	db := database.InitDB(":memory:",
		&model.User{},
		&model.Category{},
		&model.Listing{},
		&model.Order{},
	)
	ctls := &router.Controllers{
		Auth:     controller.NewAuthController(repository.NewUserRepository(db)),
		Category: controller.NewCategoryController(repository.NewCategoryRepository(db)),
		Product:  controller.NewProductController(repository.NewListingRepository(db), repository.NewCategoryRepository(db)),
		Order:    controller.NewOrderController(repository.NewOrderRepository(db)),
	}
	engine := gin.New()
	router.InitRoutes(engine, ctls)
	apiSrv := httptest.NewServer(engine)
	t.Cleanup(apiSrv.Close)

	// 图片服务器：校验器会真实探测一次
	imgSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte{0xFF, 0xD8})
	}))
	t.Cleanup(imgSrv.Close)

	client := api.NewClient(config.APIConfig{
		BaseURL: apiSrv.URL,
		Timeout: 5 * time.Second,
	}, config.AuthConfig{Username: "kay", Password: "secret123"})

	validator := service.NewValidator(utils.NewImageProbe(5*time.Second), false)
	catSvc := service.NewCategoryService(client)

	return &testEnv{
		client:     client,
		listingSvc: service.NewListingService(validator, catSvc, client),
		catSvc:     catSvc,
		imageURL:   imgSrv.URL + "/bike.jpg",
	}
}

func (e *testEnv) signup(t *testing.T, ctx context.Context) {
	t.Helper()
	if _, err := e.client.Register(ctx, dto.RegisterRequest{
		Username: "kay", Password: "secret123", Email: "kay@example.com",
	}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if _, err := e.client.Login(ctx, "kay", "secret123"); err != nil {
		t.Fatalf("登录失败: %v", err)
	}
}

// ==================== 全链路测试 ====================

func TestSubmitFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, ctx)

	// 预置一个已知分类
	if _, err := env.client.CreateCategory(ctx, "Tools"); err != nil {
		t.Fatalf("预置分类失败: %v", err)
	}

	known, err := env.catSvc.Known(ctx)
	if err != nil {
		t.Fatalf("拉取分类快照失败: %v", err)
	}
	if len(known) != 1 {
		t.Fatalf("已知分类 = %v, want [Tools]", known)
	}

	// 表单：已知分类 tools（大小写不同）+ 新分类 Garden
	form := service.NewFormState(ctx, "kay", known)
	defer form.Close()
	form.SetTitle("Bike")
	form.SetPrice("42")
	form.SetDescription("A very nice bike")
	form.SetImage(env.imageURL)
	form.SelectCategory(model.Category{Name: "tools"})
	form.SelectCategory(model.Category{Name: "Garden"})

	msg := env.listingSvc.Submit(form)
	if msg.Kind != model.StatusSuccess || msg.Text != "Created" {
		t.Fatalf("提交结果 = %+v, want Created", msg)
	}

	// 对账只创建了 Garden，没有重复创建 Tools
	categories, err := env.client.Categories(ctx)
	if err != nil {
		t.Fatalf("拉取分类失败: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("后端分类 = %v, want [Garden Tools]", categories)
	}

	// 按分类浏览
	listings, err := env.client.Products(ctx, "garden")
	if err != nil {
		t.Fatalf("按分类浏览失败: %v", err)
	}
	if len(listings) != 1 || listings[0].Title != "Bike" {
		t.Fatalf("浏览结果 = %v, want Bike", listings)
	}

	// 编辑已有商品
	edit := service.NewEditFormState(ctx, &listings[0], known)
	defer edit.Close()
	edit.SetTitle("Better bike")
	edit.SetTitle("Better Bike")
	edit.SetTitle("Racing bike")

	if got := edit.Draft().Title; got != "Racing bike" {
		t.Fatalf("编辑预填错误: %q", got)
	}
	msg = env.listingSvc.Submit(edit)
	if msg.Kind != model.StatusSuccess || msg.Text != "Updated" {
		t.Fatalf("编辑结果 = %+v, want Updated", msg)
	}

	updated, err := env.client.Product(ctx, listings[0].ID)
	if err != nil {
		t.Fatalf("拉取商品详情失败: %v", err)
	}
	if updated.Title != "Racing bike" {
		t.Errorf("编辑未生效: %+v", updated)
	}

	// 购物车结算
	var cart model.Cart
	cart.Add(*updated)
	cart.Add(*updated)
	items, err := cart.ToOrderItems()
	if err != nil {
		t.Fatalf("购物车转订单失败: %v", err)
	}
	lines := make([]dto.OrderLine, len(items))
	for i, item := range items {
		lines[i] = dto.OrderLine{
			ListingID: item.ListingID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}
	res, err := env.client.PlaceOrder(ctx, &dto.OrderPayload{Owner: "kay", Items: lines})
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}
	if !res.Success || res.Message != "Order placed" {
		t.Errorf("下单回执 = %+v", res)
	}
}

// 校验失败的提交不应触碰后端：分类与商品都保持原样
func TestSubmitFlow_ValidationRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, ctx)

	form := service.NewFormState(ctx, "kay", nil)
	defer form.Close()
	form.SetTitle("bike")
	form.SetPrice("42")
	form.SetDescription("A very nice bike")
	form.SetImage(env.imageURL)
	form.SelectCategory(model.Category{Name: "Garden"})

	msg := env.listingSvc.Submit(form)
	if msg.Kind != model.StatusError || msg.Text != service.MsgTitleCapital {
		t.Fatalf("提交结果 = %+v, want %q", msg, service.MsgTitleCapital)
	}

	categories, _ := env.client.Categories(ctx)
	if len(categories) != 0 {
		t.Errorf("校验被拒时不应创建分类, got %v", categories)
	}
	listings, _ := env.client.Products(ctx, "")
	if len(listings) != 0 {
		t.Errorf("校验被拒时不应落库, got %v", listings)
	}

	// 修正标题后重试成功（提交限流按用户冷却，先复位）
	middleware.GetLimiter().Reset("kay:product")
	form.SetTitle("Bike")
	if msg := env.listingSvc.Submit(form); msg.Kind != model.StatusSuccess {
		t.Fatalf("修正后重试失败: %+v", msg)
	}
}
