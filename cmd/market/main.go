package main

import (
	"context"
	"flag"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/KayTee1/E-commerce/internal/api"
	"github.com/KayTee1/E-commerce/internal/config"
	"github.com/KayTee1/E-commerce/internal/service"
	"github.com/KayTee1/E-commerce/internal/task"
	"github.com/KayTee1/E-commerce/internal/tui"
	"github.com/KayTee1/E-commerce/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化 API 客户端并登录
	client := api.NewClient(cfg.API, cfg.Auth)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	auth, err := client.Login(ctx, cfg.Auth.Username, cfg.Auth.Password)
	cancel()
	if err != nil {
		log.Fatalf("登录失败: %v", err)
	}
	log.Printf("[Main] 已登录: %s", auth.Username)

	// 3. 启动后台任务
	tasks := task.NewManager()
	tasks.Register("token-keepalive", task.NewTokenTask(client))
	tasks.StartAll()
	defer tasks.StopAll()

	// 4. 组装提交流程
	prober := utils.NewImageProbe(cfg.API.Timeout)
	validator := service.NewValidator(prober, cfg.Validation.Strict)
	categorySvc := service.NewCategoryService(client)
	listingSvc := service.NewListingService(validator, categorySvc, client)

	// 5. 挂载表单：拉取已知分类快照
	ctx, cancel = context.WithTimeout(context.Background(), cfg.API.Timeout)
	known, err := categorySvc.Known(ctx)
	cancel()
	if err != nil {
		log.Printf("[Main] 分类快照拉取失败，面板将为空: %v", err)
	}

	form := service.NewFormState(context.Background(), auth.Username, known)
	defer form.Close()

	// 6. 运行界面
	program := tea.NewProgram(tui.NewModel(form, listingSvc, categorySvc))
	if _, err := program.Run(); err != nil {
		log.Fatalf("界面退出异常: %v", err)
	}

	// 给在途请求让出一点收尾时间，迟到结果会被表单丢弃
	time.Sleep(100 * time.Millisecond)
}
