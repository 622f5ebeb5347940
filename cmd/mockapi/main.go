package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/KayTee1/E-commerce/internal/config"
	"github.com/KayTee1/E-commerce/internal/controller"
	"github.com/KayTee1/E-commerce/internal/middleware"
	"github.com/KayTee1/E-commerce/internal/model"
	"github.com/KayTee1/E-commerce/internal/repository"
	"github.com/KayTee1/E-commerce/internal/router"
	"github.com/KayTee1/E-commerce/pkg/database"
)

// 本地模拟后端：实现外部市场 API 的开发/测试替身

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 1. 初始化数据库
	db := initDatabase(cfg.Mock.Database)

	// 2. 初始化依赖
	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey: cfg.Mock.JWTSecret,
		TokenTTL:  2 * time.Hour,
		Issuer:    "market-mock-api",
	})
	ctls := initControllers(db)

	// 3. 初始化路由
	r := gin.New()
	r.Use(gin.Recovery(), middleware.AccessLog())
	router.InitRoutes(r, ctls)

	// 4. 启动服务
	startServer(r, cfg.Mock.Addr)
}

// initDatabase 初始化数据库
func initDatabase(path string) *gorm.DB {
	return database.InitDB(path,
		&model.User{},
		&model.Category{},
		&model.Listing{},
		&model.Order{},
	)
}

// initControllers 组装仓储与控制器
func initControllers(db *gorm.DB) *router.Controllers {
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	listingRepo := repository.NewListingRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	return &router.Controllers{
		Auth:     controller.NewAuthController(userRepo),
		Category: controller.NewCategoryController(categoryRepo),
		Product:  controller.NewProductController(listingRepo, categoryRepo),
		Order:    controller.NewOrderController(orderRepo),
	}
}

// startServer 启动并优雅退出
func startServer(r *gin.Engine, addr string) {
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Printf("[MockAPI] 服务已启动: %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[MockAPI] 服务异常退出: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[MockAPI] 正在退出...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[MockAPI] 退出失败: %v", err)
	}
	log.Println("[MockAPI] 已退出")
}
