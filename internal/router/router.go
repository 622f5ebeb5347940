package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KayTee1/E-commerce/internal/controller"
	"github.com/KayTee1/E-commerce/internal/middleware"
)

// Controllers 控制器集合
type Controllers struct {
	Auth     *controller.AuthController
	Category *controller.CategoryController
	Product  *controller.ProductController
	Order    *controller.OrderController
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctls *Controllers) {
	api := r.Group("/api")
	{
		// users 鉴权组
		users := api.Group("/users")
		{
			users.POST("/register", ctls.Auth.Register)
			users.POST("/login", ctls.Auth.Login)
		}

		// categories 分类组
		categories := api.Group("/categories")
		{
			// GET /api/categories
			categories.GET("", ctls.Category.List)
			// POST /api/categories （Bearer 鉴权）
			categories.POST("", middleware.JWTAuth(), ctls.Category.Create)
		}

		// products 商品组
		products := api.Group("/products")
		{
			products.GET("", ctls.Product.List)
			products.GET("/:id", ctls.Product.Get)
			// 提交类接口加冷却限流，防止重复点击造成重复商品
			products.POST("", middleware.JWTAuth(),
				middleware.SubmitRateLimit("product", time.Second), ctls.Product.Create)
			products.PUT("/:id", middleware.JWTAuth(), ctls.Product.Update)
		}

		// orders 订单组
		orders := api.Group("/orders")
		{
			orders.POST("", middleware.JWTAuth(),
				middleware.SubmitRateLimit("order", time.Second), ctls.Order.Create)
			orders.GET("", middleware.JWTAuth(), ctls.Order.ListMine)
		}
	}
}
