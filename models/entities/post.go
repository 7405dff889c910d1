package entities

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Xushengqwer/blog_service/constant"
)

// Post 博客文章
// - 表名: posts
// - 作者 (User) 必填；评论、点赞关系的拥有端
// - 与 Tag / Category 通过 post_to_tag / post_to_category 关联，点赞关系使用 likes 表
type Post struct {
	BaseModel

	// 标题，必填且不能只有空白
	Title string `gorm:"type:varchar(255);not null"`

	// 正文
	Content string `gorm:"type:text;not null"`

	// 是否已发布，列表接口支持按该字段精确过滤
	Published bool `gorm:"not null;default:false;index"`

	// 首次发布时间，由 SetPublished 在 false -> true 时写入，之后不再清除
	PublishedAt *time.Time

	// 是否允许评论，由作者控制。注意不要加 default 标签，false 是合法的显式取值
	CommentsActive bool `gorm:"not null"`

	UserID uint64 `gorm:"not null;index"`
	User   *User  `gorm:"foreignKey:UserID"`

	Comments   []*Comment  `gorm:"foreignKey:PostID"`
	Tags       []*Tag      `gorm:"many2many:post_to_tag;"`
	Categories []*Category `gorm:"many2many:post_to_category;"`
	Likes      []*User     `gorm:"many2many:likes;"`
}

// NewPost 创建帖子并初始化空的关联集合
func NewPost() *Post {
	return &Post{
		Comments:   []*Comment{},
		Tags:       []*Tag{},
		Categories: []*Category{},
		Likes:      []*User{},
	}
}

// SetPublished 设置发布状态。
// 只有从未发布切换到发布时才记录 PublishedAt；取消发布不会清除它，再次发布也不会覆盖。
// 返回值表示本次调用是否首次写入了发布时间，服务层据此发送首次发布事件。
func (p *Post) SetPublished(published bool) bool {
	stamped := false
	if published && !p.Published && p.PublishedAt == nil {
		t := now()
		p.PublishedAt = &t
		stamped = true
	}
	p.Published = published
	return stamped
}

// GetSummary 内容超过 40 个字符时截取前 40 个字符并追加 "..."，否则原样返回。
// 按 rune 计算，不会截断多字节字符。
func (p *Post) GetSummary() string {
	runes := []rune(p.Content)
	if len(runes) <= constant.PostSummaryLength {
		return p.Content
	}
	return string(runes[:constant.PostSummaryLength]) + constant.PostSummarySuffix
}

// SetUser 设置作者
func (p *Post) SetUser(u *User) {
	p.User = u
	if u == nil {
		p.UserID = 0
		return
	}
	p.UserID = u.ID
}

// IsOwnedBy 判断帖子作者是否为指定用户
func (p *Post) IsOwnedBy(userID uint64) bool {
	return userID != 0 && p.UserID == userID
}

// AddComment 添加评论并把评论的所属帖子指向当前帖子；已存在时不做任何事。
func (p *Post) AddComment(c *Comment) {
	if c == nil || indexOf(p.Comments, c) >= 0 {
		return
	}
	p.Comments = append(p.Comments, c)
	c.SetPost(p)
}

// RemoveComment 从集合中移除评论。
// 只有当评论仍指向当前帖子时才清空其帖子引用，已被改挂到其他帖子的评论保持不变。
func (p *Post) RemoveComment(c *Comment) {
	i := indexOf(p.Comments, c)
	if i < 0 {
		return
	}
	p.Comments = removeAt(p.Comments, i)
	if identical(c.Post, p) {
		c.SetPost(nil)
	}
}

// AddLike 记录用户点赞，同时维护 User.LikedPosts。
func (p *Post) AddLike(u *User) {
	if u == nil {
		return
	}
	if indexOf(p.Likes, u) < 0 {
		p.Likes = append(p.Likes, u)
	}
	if indexOf(u.LikedPosts, p) < 0 {
		u.LikedPosts = append(u.LikedPosts, p)
	}
}

// RemoveLike 取消点赞，两侧集合同时移除。
func (p *Post) RemoveLike(u *User) {
	if u == nil {
		return
	}
	if i := indexOf(p.Likes, u); i >= 0 {
		p.Likes = removeAt(p.Likes, i)
	}
	if i := indexOf(u.LikedPosts, p); i >= 0 {
		u.LikedPosts = removeAt(u.LikedPosts, i)
	}
}

// HasLike 用户是否已点赞
func (p *Post) HasLike(u *User) bool {
	return indexOf(p.Likes, u) >= 0
}

// AddTag 添加标签，重复添加无效果
func (p *Post) AddTag(t *Tag) {
	if t != nil && indexOf(p.Tags, t) < 0 {
		p.Tags = append(p.Tags, t)
	}
}

// RemoveTag 移除标签
func (p *Post) RemoveTag(t *Tag) {
	if i := indexOf(p.Tags, t); i >= 0 {
		p.Tags = removeAt(p.Tags, i)
	}
}

// AddCategory 添加分类，重复添加无效果
func (p *Post) AddCategory(c *Category) {
	if c != nil && indexOf(p.Categories, c) < 0 {
		p.Categories = append(p.Categories, c)
	}
}

// RemoveCategory 移除分类
func (p *Post) RemoveCategory(c *Category) {
	if i := indexOf(p.Categories, c); i >= 0 {
		p.Categories = removeAt(p.Categories, i)
	}
}

// Validate 持久化前校验。作者既可以通过 User 也可以通过 UserID 指定。
func (p *Post) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Title, notBlank, validation.Length(0, 255)),
		validation.Field(&p.Content, notBlank),
		validation.Field(&p.UserID, validation.Required.Error("author is required")),
	)
}
