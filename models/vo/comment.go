package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// CommentVO 评论读视图
type CommentVO struct {
	ID        uint64     `json:"id"`
	Content   string     `json:"content"`
	Approved  bool       `json:"approved"`
	PostID    uint64     `json:"post_id"`
	Author    *UserRefVO `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
}

// CommentListVO 评论分页结果
type CommentListVO struct {
	Comments []*CommentVO `json:"comments"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

func NewCommentVO(c *entities.Comment) *CommentVO {
	if c == nil {
		return nil
	}
	return &CommentVO{
		ID:        c.ID,
		Content:   c.Content,
		Approved:  c.Approved,
		PostID:    c.PostID,
		Author:    NewUserRefVO(c.User),
		CreatedAt: c.CreatedAt,
	}
}
