package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== 访问日志 ====================

// AccessLog 访问日志中间件
// 记录 方法/路径/状态码/耗时，已鉴权请求附带用户名
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		who := c.GetString(ContextKeyUsername)
		if who == "" {
			who = "-"
		}

		log.Printf("[API] %s %s -> %d (%s) user=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start).Round(time.Millisecond),
			who,
		)
	}
}
