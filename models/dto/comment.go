package dto

// CreateCommentRequest 发表评论 (写入字段组)，评论者为当前登录用户
type CreateCommentRequest struct {
	PostID  uint64 `json:"post_id" binding:"required" example:"1"`
	Content string `json:"content" binding:"required,max=5000" example:"写得不错"`
}

// ReplaceCommentRequest 修改评论 (PUT)
// Approved 只有作者角色可以修改，nil 表示保持原值
type ReplaceCommentRequest struct {
	Content  string `json:"content" binding:"required,max=5000"`
	Approved *bool  `json:"approved"`
}

// ListCommentsQuery 评论列表查询，PostID 为空时返回全部评论
type ListCommentsQuery struct {
	PostID *uint64 `form:"post_id" json:"post_id,omitempty"`
	PageQuery
}
