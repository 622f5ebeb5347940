package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// ==================== 接口定义 ====================

// Session 鉴权会话（api.Client 实现）
type Session interface {
	// AuthExpiry 当前 Token 的过期时间
	AuthExpiry() (time.Time, error)
	// Renew 用配置凭据重新登录
	Renew(ctx context.Context) error
}

// ==================== Token 保活任务 ====================

// TokenTask 定时检查 Bearer Token 是否临近过期并续期
type TokenTask struct {
	session Session
	cron    *cron.Cron

	// 距过期不足该窗口时触发续期
	renewWindow time.Duration
}

// NewTokenTask 创建保活任务
func NewTokenTask(session Session) *TokenTask {
	return &TokenTask{
		session:     session,
		cron:        cron.New(cron.WithSeconds()), // 支持秒级控制
		renewWindow: 10 * time.Minute,
	}
}

// SetRenewWindow 设置续期窗口
func (t *TokenTask) SetRenewWindow(window time.Duration) {
	t.renewWindow = window
}

// Start 启动定时任务
func (t *TokenTask) Start() {
	// 定时策略：每 5 分钟检查一次
	_, err := t.cron.AddFunc("0 0/5 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.renewJob(ctx)
	})
	if err != nil {
		log.Fatalf("[TokenTask] 无法启动定时任务: %v", err)
	}

	t.cron.Start()
	log.Println("[TokenTask] Token 保活任务已启动 (每5分钟检查)")
}

// Stop 停止任务
func (t *TokenTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[TokenTask] 已停止")
}

// renewJob 检查并续期
func (t *TokenTask) renewJob(ctx context.Context) {
	expiry, err := t.session.AuthExpiry()
	if err != nil {
		log.Printf("[TokenTask] 读取 Token 过期时间失败: %v", err)
		return
	}

	remaining := time.Until(expiry)
	if remaining > t.renewWindow {
		return
	}

	log.Printf("[TokenTask] Token 剩余 %s，开始续期", remaining.Round(time.Second))
	if err := t.session.Renew(ctx); err != nil {
		// 日志仅记录，下一轮继续尝试
		log.Printf("[TokenTask] 续期失败: %v", err)
		return
	}
	log.Println("[TokenTask] 续期成功")
}
