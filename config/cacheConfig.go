package config

// CacheConfig 读缓存相关配置
type CacheConfig struct {
	// PostDetailTTL 帖子详情缓存时长(秒)，落在 blog:app 命名空间
	PostDetailTTL int `mapstructure:"postDetailTTL" json:"postDetailTTL" yaml:"postDetailTTL"`
	// PostListTTL 帖子列表分页结果缓存时长(秒)，落在 blog:result 命名空间
	PostListTTL int `mapstructure:"postListTTL" json:"postListTTL" yaml:"postListTTL"`
	// TaxonomyTTL 标签/分类列表缓存时长(秒)，落在 blog:metadata 命名空间
	TaxonomyTTL int `mapstructure:"taxonomyTTL" json:"taxonomyTTL" yaml:"taxonomyTTL"`
	// ScanBatchSize 清理命名空间时每次 SCAN 的 COUNT 提示值
	ScanBatchSize int64 `mapstructure:"scanBatchSize" json:"scanBatchSize" yaml:"scanBatchSize"`
}

// PopularPostsConfig 热门帖子榜单任务配置
type PopularPostsConfig struct {
	// CronSpec 为空时使用 constant.PopularPostsCronSpec
	CronSpec string `mapstructure:"cronSpec" json:"cronSpec" yaml:"cronSpec"`
	// Size 榜单保留的帖子数量
	Size int `mapstructure:"size" json:"size" yaml:"size"`
}
