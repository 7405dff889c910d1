package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/response"
)

// ErrorHandlingMiddleware 捕获后续 handler 的 panic，记录堆栈并返回统一的 500 响应。
func ErrorHandlingMiddleware(logger *core.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("请求处理发生 panic",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.ByteString("stack", debug.Stack()),
				)
				response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "服务器内部错误")
			}
		}()
		c.Next()
	}
}
