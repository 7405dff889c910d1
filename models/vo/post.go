package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// PostVO 帖子读视图 (详情)
type PostVO struct {
	ID             uint64        `json:"id"`
	Title          string        `json:"title"`
	Content        string        `json:"content"`
	Summary        string        `json:"summary"`
	Published      bool          `json:"published"`
	PublishedAt    *time.Time    `json:"published_at"`
	CommentsActive bool          `json:"comments_active"`
	Author         *UserRefVO    `json:"author"`
	Comments       []*CommentVO  `json:"comments"`
	Tags           []*TaxonomyVO `json:"tags"`
	Categories     []*TaxonomyVO `json:"categories"`
	LikeCount      int           `json:"like_count"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// PostSummaryVO 列表项，不带正文与评论
type PostSummaryVO struct {
	ID             uint64        `json:"id"`
	Title          string        `json:"title"`
	Summary        string        `json:"summary"`
	Published      bool          `json:"published"`
	PublishedAt    *time.Time    `json:"published_at"`
	CommentsActive bool          `json:"comments_active"`
	Author         *UserRefVO    `json:"author"`
	Tags           []*TaxonomyVO `json:"tags"`
	Categories     []*TaxonomyVO `json:"categories"`
	LikeCount      int           `json:"like_count"`
	CreatedAt      time.Time     `json:"created_at"`
}

// PostListVO 帖子分页结果
type PostListVO struct {
	Posts    []*PostSummaryVO `json:"posts"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// PopularPostVO 热门帖子
type PopularPostVO struct {
	Rank      int            `json:"rank"`
	LikeCount int64          `json:"like_count"`
	Post      *PostSummaryVO `json:"post"`
}

// NewPostVO 实体转详情视图。关联需要预加载，未加载的关联输出为空列表。
func NewPostVO(p *entities.Post) *PostVO {
	if p == nil {
		return nil
	}
	comments := make([]*CommentVO, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, NewCommentVO(c))
	}
	return &PostVO{
		ID:             p.ID,
		Title:          p.Title,
		Content:        p.Content,
		Summary:        p.GetSummary(),
		Published:      p.Published,
		PublishedAt:    p.PublishedAt,
		CommentsActive: p.CommentsActive,
		Author:         NewUserRefVO(p.User),
		Comments:       comments,
		Tags:           NewTagVOs(p.Tags),
		Categories:     NewCategoryVOs(p.Categories),
		LikeCount:      len(p.Likes),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// NewPostSummaryVO 实体转列表项
func NewPostSummaryVO(p *entities.Post) *PostSummaryVO {
	if p == nil {
		return nil
	}
	return &PostSummaryVO{
		ID:             p.ID,
		Title:          p.Title,
		Summary:        p.GetSummary(),
		Published:      p.Published,
		PublishedAt:    p.PublishedAt,
		CommentsActive: p.CommentsActive,
		Author:         NewUserRefVO(p.User),
		Tags:           NewTagVOs(p.Tags),
		Categories:     NewCategoryVOs(p.Categories),
		LikeCount:      len(p.Likes),
		CreatedAt:      p.CreatedAt,
	}
}

// NewPostSummaryVOs 批量转换
func NewPostSummaryVOs(posts []*entities.Post) []*PostSummaryVO {
	out := make([]*PostSummaryVO, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostSummaryVO(p))
	}
	return out
}
