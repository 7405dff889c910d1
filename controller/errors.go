package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/response"
)

// respondServiceError 把服务层错误映射为 HTTP 状态码与业务错误码。
// 未识别的错误按 500 处理，且不把内部错误信息返回给客户端。
func respondServiceError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, myErrors.ErrValidation):
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, err.Error())
	case errors.Is(err, myErrors.ErrUnauthenticated):
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "需要登录")
	case errors.Is(err, myErrors.ErrInvalidCredentials):
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "用户名或密码错误")
	case errors.Is(err, myErrors.ErrForbidden):
		response.RespondError(c, http.StatusForbidden, response.ErrCodeClientForbidden, "无权执行该操作")
	case errors.Is(err, myErrors.ErrCommentsClosed):
		response.RespondError(c, http.StatusForbidden, response.ErrCodeClientForbidden, "该帖子已关闭评论")
	case errors.Is(err, myErrors.ErrRepoNotFound):
		response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "资源不存在")
	case errors.Is(err, myErrors.ErrDuplicateEntry):
		response.RespondError(c, http.StatusConflict, response.ErrCodeClientConflict, "资源已存在")
	case errors.Is(err, myErrors.ErrPayloadTooLarge):
		response.RespondError(c, http.StatusRequestEntityTooLarge, response.ErrCodeClientPayloadTooLarge, err.Error())
	case errors.Is(err, myErrors.ErrStorageUnavailable):
		response.RespondError(c, http.StatusServiceUnavailable, response.ErrCodeServerInternal, "对象存储暂不可用")
	default:
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, action+"失败")
	}
}

// pathID 解析路径参数中的 ID，失败时已经写入 400 响应
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "URL 路径中的 "+name+" 格式无效")
		return 0, false
	}
	return id, true
}

// actorID 当前登录用户，匿名时为 0，由服务层决定是否拒绝
func actorID(c *gin.Context) uint64 {
	id, _ := middleware.CurrentUserID(c)
	return id
}
