package dto

// CreateUserRequest 注册用户 (写入字段组)
type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email,max=180" example:"alice@example.com"`
	Username  string `json:"username" binding:"required,min=3,max=50" example:"alice"`
	FirstName string `json:"first_name" binding:"required,max=100" example:"Alice"`
	LastName  string `json:"last_name" binding:"omitempty,max=100" example:"Liddell"`
	Password  string `json:"password" binding:"required,min=8,max=128" example:"s3cretPassw0rd"`
}

// ReplaceUserRequest 整体替换用户资料 (PUT)
// - Password 为空表示不修改密码
// - Verified / IsAuthor 只有具备 ROLE_AUTHOR 的用户才能修改，nil 表示保持原值
type ReplaceUserRequest struct {
	Email     string `json:"email" binding:"required,email,max=180"`
	Username  string `json:"username" binding:"required,min=3,max=50"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"omitempty,max=100"`
	Password  string `json:"password" binding:"omitempty,min=8,max=128"`
	Verified  *bool  `json:"verified"`
	IsAuthor  *bool  `json:"is_author"`
}
