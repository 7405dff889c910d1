package myErrors

import "errors"

// ErrCacheMiss 表示在缓存层未找到对应的键值
var ErrCacheMiss = errors.New("cache: key not found (miss)")

// 仓库层错误
var (
	// ErrRepoNotFound 记录不存在 (由 gorm.ErrRecordNotFound 或 RowsAffected == 0 转换而来)
	ErrRepoNotFound = errors.New("repo: record not found")
	// ErrDuplicateEntry 唯一约束冲突，例如重复的 email / username
	ErrDuplicateEntry = errors.New("repo: duplicate entry")
)

// 业务层错误
var (
	// ErrValidation 实体或请求校验失败，通常包装 ozzo-validation 的 Errors
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated 需要登录但请求中没有有效令牌
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidCredentials 用户名/邮箱或密码错误
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden 已登录但无权执行该操作
	ErrForbidden = errors.New("forbidden")
	// ErrCommentsClosed 帖子已关闭评论
	ErrCommentsClosed = errors.New("comments are closed for this post")
	// ErrPayloadTooLarge 上传文件超过大小限制
	ErrPayloadTooLarge = errors.New("payload too large")
	// ErrStorageUnavailable 对象存储未配置或不可用
	ErrStorageUnavailable = errors.New("object storage unavailable")
)
