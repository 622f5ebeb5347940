package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KayTee1/E-commerce/internal/api/dto"
	"github.com/KayTee1/E-commerce/internal/model"
	"github.com/KayTee1/E-commerce/internal/repository"
)

// ==================== 控制器 ====================

// CategoryController 分类控制器
type CategoryController struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryController(categoryRepo repository.CategoryRepository) *CategoryController {
	return &CategoryController{categoryRepo: categoryRepo}
}

// ==================== API 方法 ====================

// List 全部分类
// GET /api/categories
func (ctrl *CategoryController) List(c *gin.Context) {
	categories, err := ctrl.categoryRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list categories"})
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

// Create 创建分类（需要鉴权）
// POST /api/categories
func (ctrl *CategoryController) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "category name is required"})
		return
	}

	name := model.NormalizeName(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "category name is required"})
		return
	}

	ctx := c.Request.Context()
	if existing, err := ctrl.categoryRepo.GetByName(ctx, name); err == nil {
		// 幂等返回已有分类
		c.JSON(http.StatusOK, existing)
		return
	}

	category := &model.Category{ID: uuid.NewString(), Name: name}
	if err := ctrl.categoryRepo.Create(ctx, category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}
