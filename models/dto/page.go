package dto

import "github.com/Xushengqwer/blog_service/constant"

// PageQuery 通用分页参数 (页码从 1 开始)
type PageQuery struct {
	Page     int `form:"page" json:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" json:"page_size" binding:"omitempty,min=1,max=100"`
}

// Normalize 填充默认值并返回 offset / limit
func (q *PageQuery) Normalize() (offset, limit int) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = constant.DefaultPageSize
	}
	if q.PageSize > constant.MaxPageSize {
		q.PageSize = constant.MaxPageSize
	}
	return (q.Page - 1) * q.PageSize, q.PageSize
}
