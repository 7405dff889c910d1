package entities

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Tag 标签，与 Post 多对多
type Tag struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null"`
}

// NewTag 构造标签，名称去掉首尾空白
func NewTag(name string) *Tag {
	return &Tag{Name: strings.TrimSpace(name)}
}

func (t *Tag) SetName(name string) { t.Name = strings.TrimSpace(name) }

func (t *Tag) Validate() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.Name, notBlank, validation.Length(0, 100)),
	)
}

// Category 分类，与 Post 多对多
type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null"`
}

// NewCategory 构造分类，名称去掉首尾空白
func NewCategory(name string) *Category {
	return &Category{Name: strings.TrimSpace(name)}
}

func (c *Category) SetName(name string) { c.Name = strings.TrimSpace(name) }

func (c *Category) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, notBlank, validation.Length(0, 100)),
	)
}
