package vo

// 以下包装器仅用于 swag 生成文档，对应 response.APIResponse[T] 的具体实例。

// UserResponseWrapper 对应 response.APIResponse[vo.UserVO]
type UserResponseWrapper struct {
	Code    int    `json:"code" example:"0"`
	Message string `json:"message,omitempty" example:"success"`
	Data    UserVO `json:"data"`
}

// UserListResponseWrapper 对应 response.APIResponse[vo.UserListVO]
type UserListResponseWrapper struct {
	Code    int        `json:"code" example:"0"`
	Message string     `json:"message,omitempty" example:"success"`
	Data    UserListVO `json:"data"`
}

// LoginResponseWrapper 对应 response.APIResponse[vo.LoginVO]
type LoginResponseWrapper struct {
	Code    int     `json:"code" example:"0"`
	Message string  `json:"message,omitempty" example:"success"`
	Data    LoginVO `json:"data"`
}

// PostResponseWrapper 对应 response.APIResponse[vo.PostVO]
type PostResponseWrapper struct {
	Code    int    `json:"code" example:"0"`
	Message string `json:"message,omitempty" example:"success"`
	Data    PostVO `json:"data"`
}

// PostListResponseWrapper 对应 response.APIResponse[vo.PostListVO]
type PostListResponseWrapper struct {
	Code    int        `json:"code" example:"0"`
	Message string     `json:"message,omitempty" example:"success"`
	Data    PostListVO `json:"data"`
}

// PostSummariesResponseWrapper 对应 response.APIResponse[[]vo.PostSummaryVO]
type PostSummariesResponseWrapper struct {
	Code    int             `json:"code" example:"0"`
	Message string          `json:"message,omitempty" example:"success"`
	Data    []PostSummaryVO `json:"data"`
}

// PopularPostsResponseWrapper 对应 response.APIResponse[[]vo.PopularPostVO]
type PopularPostsResponseWrapper struct {
	Code    int             `json:"code" example:"0"`
	Message string          `json:"message,omitempty" example:"success"`
	Data    []PopularPostVO `json:"data"`
}

// CommentResponseWrapper 对应 response.APIResponse[vo.CommentVO]
type CommentResponseWrapper struct {
	Code    int       `json:"code" example:"0"`
	Message string    `json:"message,omitempty" example:"success"`
	Data    CommentVO `json:"data"`
}

// CommentListResponseWrapper 对应 response.APIResponse[vo.CommentListVO]
type CommentListResponseWrapper struct {
	Code    int           `json:"code" example:"0"`
	Message string        `json:"message,omitempty" example:"success"`
	Data    CommentListVO `json:"data"`
}

// TaxonomyResponseWrapper 对应 response.APIResponse[vo.TaxonomyVO]
type TaxonomyResponseWrapper struct {
	Code    int        `json:"code" example:"0"`
	Message string     `json:"message,omitempty" example:"success"`
	Data    TaxonomyVO `json:"data"`
}

// TaxonomyListResponseWrapper 对应 response.APIResponse[[]vo.TaxonomyVO]
type TaxonomyListResponseWrapper struct {
	Code    int          `json:"code" example:"0"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    []TaxonomyVO `json:"data"`
}

// --- 用于错误响应 或 简单成功响应（只有 Code 和 Message） ---

// BaseResponseWrapper 代表一个只包含 Code 和 Message 的响应。
// 适用于错误情况（RespondError 返回时 Data 为 nil 且 omitempty）
// 或某些成功操作（如 DELETE）可能也只返回 Code 和 Message。
type BaseResponseWrapper struct {
	Code    int    `json:"code" example:"0"`          // 成功时为 0, 错误时为具体错误码
	Message string `json:"message" example:"success"` // 成功或错误消息
}
