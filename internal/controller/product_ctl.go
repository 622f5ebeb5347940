package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/KayTee1/E-commerce/internal/api/dto"
	"github.com/KayTee1/E-commerce/internal/middleware"
	"github.com/KayTee1/E-commerce/internal/model"
	"github.com/KayTee1/E-commerce/internal/repository"
)

// ==================== 控制器 ====================

// ProductController 商品控制器
type ProductController struct {
	listingRepo  repository.ListingRepository
	categoryRepo repository.CategoryRepository
}

func NewProductController(listingRepo repository.ListingRepository, categoryRepo repository.CategoryRepository) *ProductController {
	return &ProductController{
		listingRepo:  listingRepo,
		categoryRepo: categoryRepo,
	}
}

// ==================== API 方法 ====================

// List 商品列表
// GET /api/products?category=Garden
func (ctrl *ProductController) List(c *gin.Context) {
	listings, err := ctrl.listingRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list products"})
		return
	}

	category := c.Query("category")
	out := make([]model.Listing, 0, len(listings))
	for i := range listings {
		if category == "" || listings[i].HasCategory(category) {
			out = append(out, listings[i])
		}
	}
	c.JSON(http.StatusOK, out)
}

// Get 商品详情
// GET /api/products/:id
func (ctrl *ProductController) Get(c *gin.Context) {
	listing, err := ctrl.listingRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}
	c.JSON(http.StatusOK, listing)
}

// Create 创建商品（需要鉴权）
// POST /api/products
// 回执固定为 {success, message}，拒绝时 message 描述原因
func (ctrl *ProductController) Create(c *gin.Context) {
	var payload dto.ListingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, model.SubmitResult{Success: false, Message: "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	if msg, ok := ctrl.checkPayload(c, &payload); !ok {
		c.JSON(http.StatusBadRequest, model.SubmitResult{Success: false, Message: msg})
		return
	}

	listing := &model.Listing{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now(),
		Title:       payload.Title,
		Price:       payload.Price,
		Description: payload.Description,
		Image:       payload.Image,
		Owner:       payload.Owner,
		Categories:  datatypes.JSONSlice[string](payload.Categories),
	}
	if err := ctrl.listingRepo.Create(ctx, listing); err != nil {
		c.JSON(http.StatusInternalServerError, model.SubmitResult{Success: false, Message: "failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, model.SubmitResult{Success: true, Message: "Created"})
}

// Update 编辑商品（需要鉴权，只允许本人）
// PUT /api/products/:id
func (ctrl *ProductController) Update(c *gin.Context) {
	var payload dto.ListingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, model.SubmitResult{Success: false, Message: "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	listing, err := ctrl.listingRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, model.SubmitResult{Success: false, Message: "product not found"})
		return
	}

	if username := c.GetString(middleware.ContextKeyUsername); username != "" && listing.Owner != username {
		c.JSON(http.StatusForbidden, model.SubmitResult{Success: false, Message: "not the owner of this product"})
		return
	}

	if msg, ok := ctrl.checkPayload(c, &payload); !ok {
		c.JSON(http.StatusBadRequest, model.SubmitResult{Success: false, Message: msg})
		return
	}

	listing.Title = payload.Title
	listing.Price = payload.Price
	listing.Description = payload.Description
	listing.Image = payload.Image
	listing.Categories = datatypes.JSONSlice[string](payload.Categories)

	if err := ctrl.listingRepo.Update(ctx, listing); err != nil {
		c.JSON(http.StatusInternalServerError, model.SubmitResult{Success: false, Message: "failed to update product"})
		return
	}

	c.JSON(http.StatusOK, model.SubmitResult{Success: true, Message: "Updated"})
}

// checkPayload 后端侧基础校验
// 商品引用的分类必须已经存在（客户端先对账再提交）
func (ctrl *ProductController) checkPayload(c *gin.Context, payload *dto.ListingPayload) (string, bool) {
	if payload.Title == "" || payload.Description == "" || payload.Image == "" {
		return "missing required fields", false
	}
	if payload.Price <= 0 {
		return "price must be positive", false
	}
	if len(payload.Categories) == 0 {
		return "at least one category is required", false
	}
	for _, name := range payload.Categories {
		if _, err := ctrl.categoryRepo.GetByName(c.Request.Context(), name); err != nil {
			return "unknown category: " + name, false
		}
	}
	return "", true
}
