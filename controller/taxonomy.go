package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/response"
	"github.com/Xushengqwer/blog_service/service"
)

// TaxonomyController 标签与分类。两者的接口形状一致，处理逻辑共用 taxonomyOps。
type TaxonomyController struct {
	tags       taxonomyOps
	categories taxonomyOps
}

// taxonomyOps 标签或分类的一组服务方法
type taxonomyOps struct {
	label   string
	list    func(ctx context.Context) ([]*vo.TaxonomyVO, error)
	get     func(ctx context.Context, id uint64) (*vo.TaxonomyVO, error)
	create  func(ctx context.Context, actorID uint64, req *dto.TaxonomyRequest) (*vo.TaxonomyVO, error)
	replace func(ctx context.Context, actorID, id uint64, req *dto.TaxonomyRequest) (*vo.TaxonomyVO, error)
	remove  func(ctx context.Context, actorID, id uint64) error
}

func NewTaxonomyController(taxonomyService service.TaxonomyService) *TaxonomyController {
	return &TaxonomyController{
		tags: taxonomyOps{
			label:   "标签",
			list:    taxonomyService.ListTags,
			get:     taxonomyService.GetTag,
			create:  taxonomyService.CreateTag,
			replace: taxonomyService.ReplaceTag,
			remove:  taxonomyService.DeleteTag,
		},
		categories: taxonomyOps{
			label:   "分类",
			list:    taxonomyService.ListCategories,
			get:     taxonomyService.GetCategory,
			create:  taxonomyService.CreateCategory,
			replace: taxonomyService.ReplaceCategory,
			remove:  taxonomyService.DeleteCategory,
		},
	}
}

// ListTags 全部标签
// @Summary      标签列表
// @Tags         taxonomies (标签/分类)
// @Produce      json
// @Success      200 {object} vo.TaxonomyListResponseWrapper "成功"
// @Router       /api/v1/blog/tags [get]
func (ctrl *TaxonomyController) ListTags(c *gin.Context) { ctrl.tags.handleList(c) }

// GetTag 标签详情
// @Summary      标签详情
// @Tags         taxonomies (标签/分类)
// @Produce      json
// @Param        id path int true "标签 ID"
// @Success      200 {object} vo.TaxonomyResponseWrapper "成功"
// @Failure      404 {object} vo.BaseResponseWrapper "标签不存在"
// @Router       /api/v1/blog/tags/{id} [get]
func (ctrl *TaxonomyController) GetTag(c *gin.Context) { ctrl.tags.handleGet(c) }

// CreateTag 创建标签
// @Summary      创建标签
// @Tags         taxonomies (标签/分类)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.TaxonomyRequest true "标签名称"
// @Success      201 {object} vo.TaxonomyResponseWrapper "创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      403 {object} vo.BaseResponseWrapper "需要作者角色"
// @Router       /api/v1/blog/tags [post]
func (ctrl *TaxonomyController) CreateTag(c *gin.Context) { ctrl.tags.handleCreate(c) }

// ReplaceTag 修改标签
// @Summary      修改标签
// @Tags         taxonomies (标签/分类)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "标签 ID"
// @Param        request body dto.TaxonomyRequest true "标签名称"
// @Success      200 {object} vo.TaxonomyResponseWrapper "修改成功"
// @Failure      403 {object} vo.BaseResponseWrapper "需要作者角色"
// @Failure      404 {object} vo.BaseResponseWrapper "标签不存在"
// @Router       /api/v1/blog/tags/{id} [put]
func (ctrl *TaxonomyController) ReplaceTag(c *gin.Context) { ctrl.tags.handleReplace(c) }

// DeleteTag 删除标签，同时解除与帖子的关联
// @Summary      删除标签
// @Tags         taxonomies (标签/分类)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "标签 ID"
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      403 {object} vo.BaseResponseWrapper "需要作者角色"
// @Failure      404 {object} vo.BaseResponseWrapper "标签不存在"
// @Router       /api/v1/blog/tags/{id} [delete]
func (ctrl *TaxonomyController) DeleteTag(c *gin.Context) { ctrl.tags.handleDelete(c) }

// ListCategories 全部分类
// @Summary      分类列表
// @Tags         taxonomies (标签/分类)
// @Produce      json
// @Success      200 {object} vo.TaxonomyListResponseWrapper "成功"
// @Router       /api/v1/blog/categories [get]
func (ctrl *TaxonomyController) ListCategories(c *gin.Context) { ctrl.categories.handleList(c) }

// GetCategory 分类详情
// @Summary      分类详情
// @Tags         taxonomies (标签/分类)
// @Produce      json
// @Param        id path int true "分类 ID"
// @Success      200 {object} vo.TaxonomyResponseWrapper "成功"
// @Failure      404 {object} vo.BaseResponseWrapper "分类不存在"
// @Router       /api/v1/blog/categories/{id} [get]
func (ctrl *TaxonomyController) GetCategory(c *gin.Context) { ctrl.categories.handleGet(c) }

// CreateCategory 创建分类
// @Summary      创建分类
// @Tags         taxonomies (标签/分类)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.TaxonomyRequest true "分类名称"
// @Success      201 {object} vo.TaxonomyResponseWrapper "创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      403 {object} vo.BaseResponseWrapper "需要作者角色"
// @Router       /api/v1/blog/categories [post]
func (ctrl *TaxonomyController) CreateCategory(c *gin.Context) { ctrl.categories.handleCreate(c) }

// ReplaceCategory 修改分类
// @Summary      修改分类
// @Tags         taxonomies (标签/分类)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类 ID"
// @Param        request body dto.TaxonomyRequest true "分类名称"
// @Success      200 {object} vo.TaxonomyResponseWrapper "修改成功"
// @Failure      403 {object} vo.BaseResponseWrapper "需要作者角色"
// @Failure      404 {object} vo.BaseResponseWrapper "分类不存在"
// @Router       /api/v1/blog/categories/{id} [put]
func (ctrl *TaxonomyController) ReplaceCategory(c *gin.Context) { ctrl.categories.handleReplace(c) }

// DeleteCategory 删除分类，同时解除与帖子的关联
// @Summary      删除分类
// @Tags         taxonomies (标签/分类)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类 ID"
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      403 {object} vo.BaseResponseWrapper "需要作者角色"
// @Failure      404 {object} vo.BaseResponseWrapper "分类不存在"
// @Router       /api/v1/blog/categories/{id} [delete]
func (ctrl *TaxonomyController) DeleteCategory(c *gin.Context) { ctrl.categories.handleDelete(c) }

func (ops taxonomyOps) handleList(c *gin.Context) {
	result, err := ops.list(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "查询"+ops.label)
		return
	}
	response.RespondSuccess(c, result, ops.label+"列表获取成功")
}

func (ops taxonomyOps) handleGet(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := ops.get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "查询"+ops.label)
		return
	}
	response.RespondSuccess(c, result, ops.label+"获取成功")
}

func (ops taxonomyOps) handleCreate(c *gin.Context) {
	var req dto.TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求负载: "+err.Error())
		return
	}
	result, err := ops.create(c.Request.Context(), actorID(c), &req)
	if err != nil {
		respondServiceError(c, err, "创建"+ops.label)
		return
	}
	response.RespondCreated(c, result, ops.label+"创建成功")
}

func (ops taxonomyOps) handleReplace(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求负载: "+err.Error())
		return
	}
	result, err := ops.replace(c.Request.Context(), actorID(c), id, &req)
	if err != nil {
		respondServiceError(c, err, "修改"+ops.label)
		return
	}
	response.RespondSuccess(c, result, ops.label+"已更新")
}

func (ops taxonomyOps) handleDelete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ops.remove(c.Request.Context(), actorID(c), id); err != nil {
		respondServiceError(c, err, "删除"+ops.label)
		return
	}
	response.RespondSuccess[any](c, nil, ops.label+"已删除")
}

func (ctrl *TaxonomyController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/tags", ctrl.ListTags)
	group.GET("/tags/:id", ctrl.GetTag)
	group.GET("/categories", ctrl.ListCategories)
	group.GET("/categories/:id", ctrl.GetCategory)

	authed := group.Group("", middleware.RequireAuth())
	{
		authed.POST("/tags", ctrl.CreateTag)
		authed.PUT("/tags/:id", ctrl.ReplaceTag)
		authed.DELETE("/tags/:id", ctrl.DeleteTag)
		authed.POST("/categories", ctrl.CreateCategory)
		authed.PUT("/categories/:id", ctrl.ReplaceCategory)
		authed.DELETE("/categories/:id", ctrl.DeleteCategory)
	}
}
