package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/response"
	"github.com/Xushengqwer/blog_service/security"
)

// UserContextMiddleware 解析 Authorization: Bearer <token>，成功后把用户 ID 写入上下文。
// - 未携带令牌的请求按匿名处理，继续往下走，由具体路由决定是否需要登录。
// - 携带了令牌但格式错误或校验失败时直接返回 401。
func UserContextMiddleware(tokens *security.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "Authorization 头格式错误")
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "令牌无效或已过期")
			return
		}
		userID, _ := claims.UserID() // Parse 已校验过 Subject
		c.Set(string(constant.UserIDKey), userID)
		c.Next()
	}
}

// RequireAuth 要求请求已经过 UserContextMiddleware 认证。
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "需要登录")
			return
		}
		c.Next()
	}
}

// CurrentUserID 读取当前登录用户 ID，匿名请求返回 false。
func CurrentUserID(c *gin.Context) (uint64, bool) {
	v, exists := c.Get(string(constant.UserIDKey))
	if !exists {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok && id != 0
}
