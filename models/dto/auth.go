package dto

// LoginRequest 登录请求，Login 可以是用户名或邮箱
type LoginRequest struct {
	Login    string `json:"login" binding:"required,max=180" example:"alice"`
	Password string `json:"password" binding:"required,max=128" example:"s3cretPassw0rd"`
}
