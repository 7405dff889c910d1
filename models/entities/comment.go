package entities

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Comment 评论，必须同时属于一篇帖子和一个用户。
// 创建时间在构造时写入且不可修改。
type Comment struct {
	BaseModel

	Content string `gorm:"type:text;not null"`

	// 审核状态，新评论默认未通过，由审核事件或作者修改
	Approved bool `gorm:"not null;default:false"`

	PostID uint64 `gorm:"not null;index"`
	Post   *Post  `gorm:"foreignKey:PostID"`

	UserID uint64 `gorm:"not null;index"`
	User   *User  `gorm:"foreignKey:UserID"`
}

// NewComment 构造评论并记录创建时间
func NewComment() *Comment {
	c := &Comment{}
	c.CreatedAt = now()
	return c
}

// SetPost 设置所属帖子，nil 表示解除关联
func (c *Comment) SetPost(p *Post) {
	c.Post = p
	if p == nil {
		c.PostID = 0
		return
	}
	c.PostID = p.ID
}

// SetUser 设置评论者，nil 表示解除关联
func (c *Comment) SetUser(u *User) {
	c.User = u
	if u == nil {
		c.UserID = 0
		return
	}
	c.UserID = u.ID
}

func (c *Comment) Approve() { c.Approved = true }

func (c *Comment) Reject() { c.Approved = false }

// IsOwnedBy 判断评论者是否为指定用户
func (c *Comment) IsOwnedBy(userID uint64) bool {
	return userID != 0 && c.UserID == userID
}

// Validate 内容非空，帖子与用户都必须指定
func (c *Comment) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Content, notBlank),
		validation.Field(&c.PostID, validation.Required.Error("post is required")),
		validation.Field(&c.UserID, validation.Required.Error("user is required")),
	)
}
