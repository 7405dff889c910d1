package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/response"
	"github.com/Xushengqwer/blog_service/service"
)

// PostController 帖子、点赞与热门榜单
type PostController struct {
	postService service.PostService
}

// NewPostController 构造函数
func NewPostController(postService service.PostService) *PostController {
	return &PostController{postService: postService}
}

// ListPosts 帖子分页列表
// @Summary      帖子列表
// @Description  published 精确匹配发布状态，title 对标题做不区分大小写的模糊匹配。结果缓存在 blog:result 命名空间。
// @Tags         posts (帖子)
// @Produce      json
// @Param        published query bool false "是否已发布"
// @Param        title query string false "标题模糊搜索关键词" maxLength(255)
// @Param        page query int false "页码 (从1开始)" minimum(1) default(1)
// @Param        page_size query int false "每页数量" minimum(1) maximum(100) default(10)
// @Success      200 {object} vo.PostListResponseWrapper "成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts [get]
func (ctrl *PostController) ListPosts(c *gin.Context) {
	var query dto.ListPostsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}
	result, err := ctrl.postService.ListPosts(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err, "查询帖子列表")
		return
	}
	response.RespondSuccess(c, result, "帖子列表获取成功")
}

// PopularPosts 热门帖子
// @Summary      热门帖子
// @Description  按点赞数排序，榜单由定时任务周期性刷新。
// @Tags         posts (帖子)
// @Produce      json
// @Param        limit query int false "返回数量" minimum(1) maximum(100) default(20)
// @Success      200 {object} vo.PopularPostsResponseWrapper "成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的 limit"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts/popular [get]
func (ctrl *PostController) PopularPosts(c *gin.Context) {
	limit := constant.PopularPostsDefaultSize
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > constant.MaxPageSize {
			response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的 limit，必须是 1 到 100 之间的整数")
			return
		}
		limit = n
	}
	result, err := ctrl.postService.PopularPosts(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err, "查询热门帖子")
		return
	}
	response.RespondSuccess(c, result, "热门帖子获取成功")
}

// GetPost 帖子详情
// @Summary      帖子详情
// @Tags         posts (帖子)
// @Produce      json
// @Param        id path int true "帖子 ID"
// @Success      200 {object} vo.PostResponseWrapper "成功"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /api/v1/blog/posts/{id} [get]
func (ctrl *PostController) GetPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := ctrl.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "查询帖子")
		return
	}
	response.RespondSuccess(c, result, "帖子获取成功")
}

// CreatePost 发表帖子，作者为当前登录用户
// @Summary      创建帖子
// @Tags         posts (帖子)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreatePostRequest true "帖子内容"
// @Success      201 {object} vo.PostResponseWrapper "创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      401 {object} vo.BaseResponseWrapper "需要登录"
// @Router       /api/v1/blog/posts [post]
func (ctrl *PostController) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求负载: "+err.Error())
		return
	}
	result, err := ctrl.postService.CreatePost(c.Request.Context(), actorID(c), &req)
	if err != nil {
		respondServiceError(c, err, "创建帖子")
		return
	}
	response.RespondCreated(c, result, "帖子创建成功")
}

// ReplacePost 整体替换帖子
// @Summary      修改帖子
// @Description  需要 ROLE_AUTHOR 或帖子所有者。标签与分类按传入列表整体替换。
// @Tags         posts (帖子)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "帖子 ID"
// @Param        request body dto.ReplacePostRequest true "帖子内容"
// @Success      200 {object} vo.PostResponseWrapper "修改成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      401 {object} vo.BaseResponseWrapper "需要登录"
// @Failure      403 {object} vo.BaseResponseWrapper "无权修改"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /api/v1/blog/posts/{id} [put]
func (ctrl *PostController) ReplacePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ReplacePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求负载: "+err.Error())
		return
	}
	result, err := ctrl.postService.ReplacePost(c.Request.Context(), actorID(c), id, &req)
	if err != nil {
		respondServiceError(c, err, "修改帖子")
		return
	}
	response.RespondSuccess(c, result, "帖子已更新")
}

// DeletePost 删除帖子及其评论
// @Summary      删除帖子
// @Tags         posts (帖子)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "帖子 ID"
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      401 {object} vo.BaseResponseWrapper "需要登录"
// @Failure      403 {object} vo.BaseResponseWrapper "无权删除"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /api/v1/blog/posts/{id} [delete]
func (ctrl *PostController) DeletePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.postService.DeletePost(c.Request.Context(), actorID(c), id); err != nil {
		respondServiceError(c, err, "删除帖子")
		return
	}
	response.RespondSuccess[any](c, nil, "帖子已删除")
}

// LikePost 点赞，重复点赞无副作用
// @Summary      点赞帖子
// @Tags         posts (帖子)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "帖子 ID"
// @Success      200 {object} vo.PostResponseWrapper "成功"
// @Failure      401 {object} vo.BaseResponseWrapper "需要登录"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /api/v1/blog/posts/{id}/likes [post]
func (ctrl *PostController) LikePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := ctrl.postService.LikePost(c.Request.Context(), actorID(c), id)
	if err != nil {
		respondServiceError(c, err, "点赞")
		return
	}
	response.RespondSuccess(c, result, "点赞成功")
}

// UnlikePost 取消点赞
// @Summary      取消点赞
// @Tags         posts (帖子)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "帖子 ID"
// @Success      200 {object} vo.PostResponseWrapper "成功"
// @Failure      401 {object} vo.BaseResponseWrapper "需要登录"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /api/v1/blog/posts/{id}/likes [delete]
func (ctrl *PostController) UnlikePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := ctrl.postService.UnlikePost(c.Request.Context(), actorID(c), id)
	if err != nil {
		respondServiceError(c, err, "取消点赞")
		return
	}
	response.RespondSuccess(c, result, "已取消点赞")
}

// RegisterRoutes 注册帖子相关路由。/posts/popular 必须先于 /posts/:id 注册。
func (ctrl *PostController) RegisterRoutes(group *gin.RouterGroup) {
	posts := group.Group("/posts")
	{
		posts.GET("", ctrl.ListPosts)
		posts.GET("/popular", ctrl.PopularPosts)
		posts.GET("/:id", ctrl.GetPost)
	}
	authed := posts.Group("", middleware.RequireAuth())
	{
		authed.POST("", ctrl.CreatePost)
		authed.PUT("/:id", ctrl.ReplacePost)
		authed.DELETE("/:id", ctrl.DeletePost)
		authed.POST("/:id/likes", ctrl.LikePost)
		authed.DELETE("/:id/likes", ctrl.UnlikePost)
	}
}
