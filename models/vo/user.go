package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// UserVO 用户读视图，不包含密码
type UserVO struct {
	ID           uint64     `json:"id"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	AvatarURL    string     `json:"avatar_url,omitempty"`
	RegisteredAt time.Time  `json:"registered_at"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	Verified     bool       `json:"verified"`
	IsAuthor     bool       `json:"is_author"`
	Roles        []string   `json:"roles"`
}

// UserListVO 用户分页结果
type UserListVO struct {
	Users    []*UserVO `json:"users"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

// UserRefVO 嵌入在帖子、评论中的作者简要信息
type UserRefVO struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// NewUserVO 实体转读视图
func NewUserVO(u *entities.User) *UserVO {
	if u == nil {
		return nil
	}
	return &UserVO{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		AvatarURL:    u.AvatarURL,
		RegisteredAt: u.RegisteredAt,
		LastLoginAt:  u.LastLoginAt,
		Verified:     u.Verified,
		IsAuthor:     u.IsAuthor,
		Roles:        u.GetRoles(),
	}
}

// NewUserRefVO 作者为空 (未预加载) 时返回 nil
func NewUserRefVO(u *entities.User) *UserRefVO {
	if u == nil {
		return nil
	}
	return &UserRefVO{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}
}

// LoginVO 登录结果
type LoginVO struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type" example:"Bearer"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *UserVO   `json:"user"`
}
