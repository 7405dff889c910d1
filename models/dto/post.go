package dto

// CreatePostRequest 创建帖子 (写入字段组)。作者即当前登录用户，不从请求体读取。
type CreatePostRequest struct {
	Title   string `json:"title" binding:"required,max=255" example:"Hello Go"`
	Content string `json:"content" binding:"required" example:"正文内容"`
	// Published 默认 false
	Published bool `json:"published" example:"false"`
	// CommentsActive 必填，使用指针以区分 false 与未传
	CommentsActive *bool    `json:"comments_active" binding:"required" example:"true"`
	TagIDs         []uint64 `json:"tag_ids"`
	CategoryIDs    []uint64 `json:"category_ids"`
}

// ReplacePostRequest 整体替换帖子 (PUT)，字段与创建一致，标签/分类按传入列表整体替换
type ReplacePostRequest = CreatePostRequest

// ListPostsQuery 帖子列表查询
// - published: 精确匹配
// - title: 标题模糊匹配
type ListPostsQuery struct {
	Published *bool  `form:"published" json:"published,omitempty"`
	Title     string `form:"title" json:"title,omitempty" binding:"omitempty,max=255"`
	PageQuery
}
