package config

// COSConfig 腾讯云 COS 配置，目前只用于用户头像。
type COSConfig struct {
	SecretID   string `mapstructure:"secret_id" json:"-" yaml:"secret_id"`
	SecretKey  string `mapstructure:"secret_key" json:"-" yaml:"secret_key"`
	BucketName string `mapstructure:"bucket_name" json:"bucket_name" yaml:"bucket_name"`
	AppID      string `mapstructure:"app_id" json:"app_id" yaml:"app_id"`
	Region     string `mapstructure:"region" json:"region" yaml:"region"`
	// BaseURL 可选，CDN 或自定义域名
	BaseURL string `mapstructure:"base_url" json:"base_url" yaml:"base_url"`
	// MaxAvatarBytes 头像大小上限，0 表示使用默认值 2MB
	MaxAvatarBytes int64 `mapstructure:"max_avatar_bytes" json:"max_avatar_bytes" yaml:"max_avatar_bytes"`
}
