package config

// BlogConfig 是博客服务的总配置，由 core.LoadConfig 从 YAML 与 BLOG_ 前缀环境变量加载。
type BlogConfig struct {
	ZapConfig          ZapConfig          `mapstructure:"zapConfig" json:"zapConfig" yaml:"zapConfig"`
	GormLogConfig      GormLogConfig      `mapstructure:"gormLogConfig" json:"gormLogConfig" yaml:"gormLogConfig"`
	ServerConfig       ServerConfig       `mapstructure:"serverConfig" json:"serverConfig" yaml:"serverConfig"`
	TracerConfig       TracerConfig       `mapstructure:"tracerConfig" json:"tracerConfig" yaml:"tracerConfig"`
	MySQLConfig        MySQLConfig        `mapstructure:"mysqlConfig" json:"mysqlConfig" yaml:"mysqlConfig"`
	RedisConfig        RedisConfig        `mapstructure:"redisConfig" json:"redisConfig" yaml:"redisConfig"`
	KafkaConfig        KafkaConfig        `mapstructure:"kafkaConfig" json:"kafkaConfig" yaml:"kafkaConfig"`
	COSConfig          COSConfig          `mapstructure:"avatarCosConfig" json:"avatarCosConfig" yaml:"avatarCosConfig"`
	AuthConfig         AuthConfig         `mapstructure:"authConfig" json:"authConfig" yaml:"authConfig"`
	CacheConfig        CacheConfig        `mapstructure:"cacheConfig" json:"cacheConfig" yaml:"cacheConfig"`
	PopularPostsConfig PopularPostsConfig `mapstructure:"popularPostsConfig" json:"popularPostsConfig" yaml:"popularPostsConfig"`
}
