package constant

// Redis 命名空间
//
// 所有缓存 Key 都落在以下四个命名空间之一，blog:cache:clear 按命名空间逐个清理。
const (
	// NamespaceApp 应用缓存: 帖子详情、用户资料等单实体视图。
	// 示例 Key: "blog:app:post:123"、"blog:app:user:7"
	// Redis 类型: String (JSON)
	NamespaceApp = "blog:app:"

	// NamespaceResult 查询结果缓存: 帖子列表分页结果。
	// 示例 Key: "blog:result:posts:published=true|title=go|page=1|size=10"
	// Redis 类型: String (JSON)
	NamespaceResult = "blog:result:"

	// NamespaceMetadata 元数据缓存: 标签、分类全量列表。
	// 示例 Key: "blog:metadata:tags"
	// Redis 类型: String (JSON)
	NamespaceMetadata = "blog:metadata:"

	// NamespaceQuery 查询派生数据: 热门帖子榜单。
	// 示例 Key: "blog:query:popular_posts"
	// Redis 类型: Sorted Set，成员为帖子 ID，分数为点赞数
	NamespaceQuery = "blog:query:"
)

// Key 前缀与固定 Key
const (
	PostDetailCacheKeyPrefix = NamespaceApp + "post:"
	UserCacheKeyPrefix       = NamespaceApp + "user:"
	PostListCacheKeyPrefix   = NamespaceResult + "posts:"
	TagListCacheKey          = NamespaceMetadata + "tags"
	CategoryListCacheKey     = NamespaceMetadata + "categories"
	PopularPostsRankKey      = NamespaceQuery + "popular_posts"
)
