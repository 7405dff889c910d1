package entities

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Xushengqwer/blog_service/constant"
)

// PasswordHasher 密码摘要算法，由 security.Argon2Hasher 实现。
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(encoded, plain string) (bool, error)
}

// User 博客用户
// - 表名: users
// - email 与 username 全局唯一，由数据库唯一索引保证，实体本身不做检查
// - 与 Post 的点赞关系中 User 是反向端，修改必须经由 Post.AddLike / Post.RemoveLike
type User struct {
	BaseModel

	// 邮箱，唯一
	Email string `gorm:"type:varchar(180);uniqueIndex;not null"`

	// 用户名，唯一
	Username string `gorm:"type:varchar(50);uniqueIndex;not null"`

	FirstName string `gorm:"type:varchar(100);not null"`
	LastName  string `gorm:"type:varchar(100)"`

	// 密码摘要 (argon2id PHC 字符串)，明文从不落库，也从不出现在任何读视图中
	PasswordHash string `gorm:"column:password;type:varchar(255);not null" json:"-"`

	// 头像地址，上传到 COS 后回填
	AvatarURL string `gorm:"type:varchar(255)"`

	// 注册时间，构造时写入，之后不可修改
	RegisteredAt time.Time `gorm:"<-:create;not null"`

	// 最近一次登录时间，登录接口或登录事件消费者更新
	LastLoginAt *time.Time

	Verified bool `gorm:"not null;default:false"`
	IsAuthor bool `gorm:"not null;default:false"`

	// ExtraRoles 显式授予的附加角色 (JSON 存储)
	ExtraRoles []string `gorm:"serializer:json;type:text"`

	Posts      []*Post    `gorm:"foreignKey:UserID"`
	Comments   []*Comment `gorm:"foreignKey:UserID"`
	LikedPosts []*Post    `gorm:"many2many:likes;"`
}

// NewUser 创建用户，只设置不可变的默认值。
func NewUser() *User {
	return &User{
		RegisteredAt: now(),
		Posts:        []*Post{},
		Comments:     []*Comment{},
		LikedPosts:   []*Post{},
	}
}

// SetPassword 保存明文的加盐摘要，明文不会被保留。
func (u *User) SetPassword(hasher PasswordHasher, plain string) error {
	hash, err := hasher.Hash(plain)
	if err != nil {
		return fmt.Errorf("生成密码摘要失败: %w", err)
	}
	u.PasswordHash = hash
	return nil
}

// VerifyPassword 校验明文是否与保存的摘要匹配。摘要损坏按不匹配处理。
func (u *User) VerifyPassword(hasher PasswordHasher, plain string) bool {
	if u.PasswordHash == "" {
		return false
	}
	ok, err := hasher.Verify(u.PasswordHash, plain)
	return err == nil && ok
}

// GetRoles 根据作者标记与附加角色计算角色集合。
// - 始终包含 ROLE_USER；当且仅当 IsAuthor 为 true 时包含 ROLE_AUTHOR
// - 结果去重，每次调用重新计算
func (u *User) GetRoles() []string {
	roles := make([]string, 0, 2+len(u.ExtraRoles))
	seen := make(map[string]struct{}, cap(roles))
	add := func(r string) {
		if r == "" {
			return
		}
		if _, ok := seen[r]; ok {
			return
		}
		seen[r] = struct{}{}
		roles = append(roles, r)
	}

	add(constant.RoleUser)
	if u.IsAuthor {
		add(constant.RoleAuthor)
	}
	for _, r := range u.ExtraRoles {
		// 作者角色只由 IsAuthor 决定
		if r == constant.RoleAuthor {
			continue
		}
		add(r)
	}
	return roles
}

// AssignRole 授予附加角色。ROLE_USER 与 ROLE_AUTHOR 由其他字段决定，这里忽略。
func (u *User) AssignRole(role string) {
	if role == "" || role == constant.RoleUser || role == constant.RoleAuthor {
		return
	}
	for _, r := range u.ExtraRoles {
		if r == role {
			return
		}
	}
	u.ExtraRoles = append(u.ExtraRoles, role)
}

// HasRole 判断是否具备某个角色
func (u *User) HasRole(role string) bool {
	for _, r := range u.GetRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// AddPost 添加帖子并设置其作者为当前用户，重复添加无效果。
func (u *User) AddPost(p *Post) {
	if p == nil || indexOf(u.Posts, p) >= 0 {
		return
	}
	u.Posts = append(u.Posts, p)
	p.SetUser(u)
}

// RemovePost 移除帖子；只有当帖子作者仍指向当前用户时才清空其作者引用。
func (u *User) RemovePost(p *Post) {
	i := indexOf(u.Posts, p)
	if i < 0 {
		return
	}
	u.Posts = removeAt(u.Posts, i)
	if identical(p.User, u) {
		p.SetUser(nil)
	}
}

// AddComment 添加评论并设置评论者为当前用户，重复添加无效果。
func (u *User) AddComment(c *Comment) {
	if c == nil || indexOf(u.Comments, c) >= 0 {
		return
	}
	u.Comments = append(u.Comments, c)
	c.SetUser(u)
}

// RemoveComment 移除评论；只有当评论者仍指向当前用户时才清空引用。
func (u *User) RemoveComment(c *Comment) {
	i := indexOf(u.Comments, c)
	if i < 0 {
		return
	}
	u.Comments = removeAt(u.Comments, i)
	if identical(c.User, u) {
		c.SetUser(nil)
	}
}

// AddLikedPost 点赞，实际由拥有端 Post.AddLike 同时维护两侧集合。
func (u *User) AddLikedPost(p *Post) {
	if p == nil {
		return
	}
	p.AddLike(u)
}

// RemoveLikedPost 取消点赞，同样委托给 Post.RemoveLike。
func (u *User) RemoveLikedPost(p *Post) {
	if p == nil {
		return
	}
	p.RemoveLike(u)
}

// LikesPost 是否已点赞
func (u *User) LikesPost(p *Post) bool {
	return indexOf(u.LikedPosts, p) >= 0
}

// FullName 名 + 姓
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Validate 持久化前的字段校验
func (u *User) Validate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Email, notBlank, is.EmailFormat, validation.Length(0, 180)),
		validation.Field(&u.Username, notBlank, validation.Length(3, 50)),
		validation.Field(&u.FirstName, notBlank, validation.Length(0, 100)),
		validation.Field(&u.LastName, validation.Length(0, 100)),
		validation.Field(&u.PasswordHash, validation.Required.Error("password must be set")),
	)
}
