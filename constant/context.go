package constant

// ContextKey gin.Context 中存放请求级数据使用的键类型
type ContextKey string

const (
	// UserIDKey 认证中间件解析令牌后写入的用户 ID (uint64)
	UserIDKey ContextKey = "userID"
	// RequestIDKey 请求日志中间件生成的请求 ID
	RequestIDKey ContextKey = "requestID"
)
