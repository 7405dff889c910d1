package dto

// TaxonomyRequest 创建或替换标签/分类
type TaxonomyRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"golang"`
}
