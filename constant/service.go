package constant

import "time"

// 服务元信息，用于追踪与日志
const (
	ServiceName    = "blog-service"
	ServiceVersion = "1.0.0"
)

// 角色
const (
	// RoleUser 所有用户都具备的基础角色
	RoleUser = "ROLE_USER"
	// RoleAuthor 作者角色，仅当 User.IsAuthor 为 true 时授予
	RoleAuthor = "ROLE_AUTHOR"
)

// 帖子相关
const (
	// PostSummaryLength 摘要截取的字符数 (按 rune 计算)
	PostSummaryLength = 40
	// PostSummarySuffix 超长内容截断后追加的后缀
	PostSummarySuffix = "..."
)

// 定时任务
const (
	// PopularPostsCronSpec 热门帖子榜单默认刷新周期
	PopularPostsCronSpec = "@every 10m"
	// PopularPostsDefaultSize 榜单默认保留数量
	PopularPostsDefaultSize = 20
	// PopularPostsTaskTimeout 单次刷新任务的超时时间
	PopularPostsTaskTimeout = 2 * time.Minute
)

// 分页
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// COS
const (
	// COSObjectKeyPrefixAvatars 头像对象键前缀，例如 avatars/20250101/42_<uuid>.png
	COSObjectKeyPrefixAvatars = "avatars/"
	// DefaultMaxAvatarBytes 头像默认大小上限
	DefaultMaxAvatarBytes int64 = 2 << 20
)
