package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/core"
)

// RequestTimeoutMiddleware 为请求的 context 设置超时，下游的数据库和 Redis 调用会随之取消。
// timeout <= 0 时不做处理。
func RequestTimeoutMiddleware(logger *core.ZapLogger, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			logger.Warn("请求处理超时",
				zap.String("path", c.Request.URL.Path),
				zap.Duration("timeout", timeout))
		}
	}
}
