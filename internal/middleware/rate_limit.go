package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== 提交限流器 ====================

// SubmitRateLimiter 提交冷却限流器
// 按限流键记录上次执行时间，冷却期内的重复请求被拒绝
type SubmitRateLimiter struct {
	locks sync.Map // key -> *lockEntry
}

type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// 全局限流器实例
var globalLimiter = &SubmitRateLimiter{}

// GetLimiter 获取全局限流器
func GetLimiter() *SubmitRateLimiter {
	return globalLimiter
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行
// key: 限流键，如 "kay:submit"
// interval: 冷却间隔
func (r *SubmitRateLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)

	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// Reset 清除限流键（测试用）
func (r *SubmitRateLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// ==================== Gin 中间件 ====================

// SubmitRateLimit 提交限流中间件
// 按 用户 + 接口 维度限流，防止重复点击提交造成重复商品
//
// 使用示例:
//
//	products.POST("", middleware.JWTAuth(),
//	    middleware.SubmitRateLimit("product", time.Second),
//	    ctrl.Create,
//	)
func SubmitRateLimit(action string, interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 优先按用户限流，未鉴权接口退化为按来源 IP
		who := c.GetString(ContextKeyUsername)
		if who == "" {
			who = c.ClientIP()
		}
		key := fmt.Sprintf("%s:%s", who, action)

		result := globalLimiter.Check(key, interval)
		if !result.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%.0f", result.RetryAfter.Seconds()))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message": "too many requests, retry later",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
