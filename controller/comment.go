package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/response"
	"github.com/Xushengqwer/blog_service/service"
)

type CommentController struct {
	commentService service.CommentService
}

func NewCommentController(commentService service.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// ListComments 评论列表
// @Summary      评论列表
// @Tags         comments (评论)
// @Produce      json
// @Param        post_id query int false "只返回指定帖子的评论"
// @Param        page query int false "页码 (从1开始)" minimum(1) default(1)
// @Param        page_size query int false "每页数量" minimum(1) maximum(100) default(10)
// @Success      200 {object} vo.CommentListResponseWrapper "成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Router       /api/v1/blog/comments [get]
func (ctrl *CommentController) ListComments(c *gin.Context) {
	var query dto.ListCommentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}
	result, err := ctrl.commentService.ListComments(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err, "查询评论列表")
		return
	}
	response.RespondSuccess(c, result, "评论列表获取成功")
}

// GetComment 评论详情
// @Summary      评论详情
// @Tags         comments (评论)
// @Produce      json
// @Param        id path int true "评论 ID"
// @Success      200 {object} vo.CommentResponseWrapper "成功"
// @Failure      404 {object} vo.BaseResponseWrapper "评论不存在"
// @Router       /api/v1/blog/comments/{id} [get]
func (ctrl *CommentController) GetComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := ctrl.commentService.GetComment(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "查询评论")
		return
	}
	response.RespondSuccess(c, result, "评论获取成功")
}

// CreateComment 发表评论，新评论等待审核
// @Summary      发表评论
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCommentRequest true "评论内容"
// @Success      201 {object} vo.CommentResponseWrapper "发表成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      401 {object} vo.BaseResponseWrapper "需要登录"
// @Failure      403 {object} vo.BaseResponseWrapper "帖子已关闭评论"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /api/v1/blog/comments [post]
func (ctrl *CommentController) CreateComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求负载: "+err.Error())
		return
	}
	result, err := ctrl.commentService.CreateComment(c.Request.Context(), actorID(c), &req)
	if err != nil {
		respondServiceError(c, err, "发表评论")
		return
	}
	response.RespondCreated(c, result, "评论已提交，等待审核")
}

// ReplaceComment 修改评论
// @Summary      修改评论
// @Description  作者或评论者可修改内容，approved 只有作者可以修改。
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评论 ID"
// @Param        request body dto.ReplaceCommentRequest true "评论内容"
// @Success      200 {object} vo.CommentResponseWrapper "修改成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      403 {object} vo.BaseResponseWrapper "无权修改"
// @Failure      404 {object} vo.BaseResponseWrapper "评论不存在"
// @Router       /api/v1/blog/comments/{id} [put]
func (ctrl *CommentController) ReplaceComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ReplaceCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求负载: "+err.Error())
		return
	}
	result, err := ctrl.commentService.ReplaceComment(c.Request.Context(), actorID(c), id, &req)
	if err != nil {
		respondServiceError(c, err, "修改评论")
		return
	}
	response.RespondSuccess(c, result, "评论已更新")
}

// DeleteComment 删除评论
// @Summary      删除评论
// @Description  作者、评论者或帖子所有者可删除。
// @Tags         comments (评论)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评论 ID"
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      403 {object} vo.BaseResponseWrapper "无权删除"
// @Failure      404 {object} vo.BaseResponseWrapper "评论不存在"
// @Router       /api/v1/blog/comments/{id} [delete]
func (ctrl *CommentController) DeleteComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.commentService.DeleteComment(c.Request.Context(), actorID(c), id); err != nil {
		respondServiceError(c, err, "删除评论")
		return
	}
	response.RespondSuccess[any](c, nil, "评论已删除")
}

func (ctrl *CommentController) RegisterRoutes(group *gin.RouterGroup) {
	comments := group.Group("/comments")
	{
		comments.GET("", ctrl.ListComments)
		comments.GET("/:id", ctrl.GetComment)
	}
	authed := comments.Group("", middleware.RequireAuth())
	{
		authed.POST("", ctrl.CreateComment)
		authed.PUT("/:id", ctrl.ReplaceComment)
		authed.DELETE("/:id", ctrl.DeleteComment)
	}
}
