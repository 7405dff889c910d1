package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/response"
	"github.com/Xushengqwer/blog_service/service"
)

// UserController 用户注册、资料、头像与点赞列表
type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

// ListUsers 用户分页列表
// @Summary      用户列表
// @Tags         users (用户)
// @Produce      json
// @Param        page query int false "页码 (从1开始)" minimum(1) default(1)
// @Param        page_size query int false "每页数量" minimum(1) maximum(100) default(10)
// @Success      200 {object} vo.UserListResponseWrapper "成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/users [get]
func (ctrl *UserController) ListUsers(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}
	result, err := ctrl.userService.ListUsers(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err, "查询用户列表")
		return
	}
	response.RespondSuccess(c, result, "用户列表获取成功")
}

// GetUser 用户资料
// @Summary      用户详情
// @Tags         users (用户)
// @Produce      json
// @Param        id path int true "用户 ID"
// @Success      200 {object} vo.UserResponseWrapper "成功"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Router       /api/v1/blog/users/{id} [get]
func (ctrl *UserController) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := ctrl.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "查询用户")
		return
	}
	response.RespondSuccess(c, result, "用户获取成功")
}

// RegisterUser 注册
// @Summary      注册用户
// @Description  公开接口。email 与 username 必须唯一，冲突时返回 409。
// @Tags         users (用户)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateUserRequest true "注册信息"
// @Success      201 {object} vo.UserResponseWrapper "注册成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      409 {object} vo.BaseResponseWrapper "邮箱或用户名已被占用"
// @Router       /api/v1/blog/users [post]
func (ctrl *UserController) RegisterUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求负载: "+err.Error())
		return
	}
	result, err := ctrl.userService.RegisterUser(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "注册用户")
		return
	}
	response.RespondCreated(c, result, "注册成功")
}

// ReplaceUser 整体替换资料
// @Summary      修改用户资料
// @Description  本人或作者可修改；verified / is_author 只有作者可以修改。
// @Tags         users (用户)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户 ID"
// @Param        request body dto.ReplaceUserRequest true "用户资料"
// @Success      200 {object} vo.UserResponseWrapper "修改成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      401 {object} vo.BaseResponseWrapper "需要登录"
// @Failure      403 {object} vo.BaseResponseWrapper "无权修改"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "邮箱或用户名已被占用"
// @Router       /api/v1/blog/users/{id} [put]
func (ctrl *UserController) ReplaceUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ReplaceUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求负载: "+err.Error())
		return
	}
	result, err := ctrl.userService.ReplaceUser(c.Request.Context(), actorID(c), id, &req)
	if err != nil {
		respondServiceError(c, err, "修改用户")
		return
	}
	response.RespondSuccess(c, result, "用户资料已更新")
}

// DeleteUser 删除用户及其帖子、评论
// @Summary      删除用户
// @Tags         users (用户)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户 ID"
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      401 {object} vo.BaseResponseWrapper "需要登录"
// @Failure      403 {object} vo.BaseResponseWrapper "无权删除"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Router       /api/v1/blog/users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.userService.DeleteUser(c.Request.Context(), actorID(c), id); err != nil {
		respondServiceError(c, err, "删除用户")
		return
	}
	response.RespondSuccess[any](c, nil, "用户已删除")
}

// UploadAvatar 上传头像
// @Summary      上传头像
// @Description  multipart/form-data，字段名 avatar，只接受图片。
// @Tags         users (用户)
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户 ID"
// @Param        avatar formData file true "头像图片"
// @Success      200 {object} vo.UserResponseWrapper "上传成功"
// @Failure      400 {object} vo.BaseResponseWrapper "缺少文件或文件类型错误"
// @Failure      403 {object} vo.BaseResponseWrapper "无权修改"
// @Failure      413 {object} vo.BaseResponseWrapper "文件过大"
// @Failure      503 {object} vo.BaseResponseWrapper "对象存储不可用"
// @Router       /api/v1/blog/users/{id}/avatar [put]
func (ctrl *UserController) UploadAvatar(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	file, err := c.FormFile("avatar")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "缺少头像文件: "+err.Error())
		return
	}
	result, err := ctrl.userService.UploadAvatar(c.Request.Context(), actorID(c), id, file)
	if err != nil {
		respondServiceError(c, err, "上传头像")
		return
	}
	response.RespondSuccess(c, result, "头像已更新")
}

// GetLikedPosts 用户点赞过的帖子
// @Summary      用户点赞的帖子
// @Tags         users (用户)
// @Produce      json
// @Param        id path int true "用户 ID"
// @Success      200 {object} vo.PostSummariesResponseWrapper "成功"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Router       /api/v1/blog/users/{id}/liked-posts [get]
func (ctrl *UserController) GetLikedPosts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := ctrl.userService.GetLikedPosts(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "查询点赞帖子")
		return
	}
	response.RespondSuccess(c, result, "点赞帖子获取成功")
}

func (ctrl *UserController) RegisterRoutes(group *gin.RouterGroup) {
	users := group.Group("/users")
	{
		users.GET("", ctrl.ListUsers)
		users.GET("/:id", ctrl.GetUser)
		users.GET("/:id/liked-posts", ctrl.GetLikedPosts)
		users.POST("", ctrl.RegisterUser)
	}
	authed := users.Group("", middleware.RequireAuth())
	{
		authed.PUT("/:id", ctrl.ReplaceUser)
		authed.DELETE("/:id", ctrl.DeleteUser)
		authed.PUT("/:id/avatar", ctrl.UploadAvatar)
	}
}
