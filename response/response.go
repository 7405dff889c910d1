package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 业务错误码，成功固定为 0
const (
	SuccessCode = 0

	ErrCodeClientInvalidInput     = 40001
	ErrCodeClientUnauthorized     = 40101
	ErrCodeClientForbidden        = 40301
	ErrCodeClientResourceNotFound = 40401
	ErrCodeClientConflict         = 40901
	ErrCodeClientPayloadTooLarge  = 41301

	ErrCodeServerInternal = 50001
	ErrCodeServerTimeout  = 50401
)

// APIResponse 统一响应包装
type APIResponse[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// RespondSuccess 返回 200 以及业务数据
func RespondSuccess[T any](c *gin.Context, data T, message string) {
	c.JSON(http.StatusOK, APIResponse[T]{
		Code:    SuccessCode,
		Message: message,
		Data:    data,
	})
}

// RespondCreated 返回 201，用于 POST 创建资源
func RespondCreated[T any](c *gin.Context, data T, message string) {
	c.JSON(http.StatusCreated, APIResponse[T]{
		Code:    SuccessCode,
		Message: message,
		Data:    data,
	})
}

// RespondError 返回错误响应，Data 为空
func RespondError(c *gin.Context, httpStatus int, code int, message string) {
	c.AbortWithStatusJSON(httpStatus, APIResponse[any]{
		Code:    code,
		Message: message,
	})
}
