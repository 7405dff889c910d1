package config

// ZapConfig 日志配置
type ZapConfig struct {
	// Level 日志级别: debug / info / warn / error
	Level string `mapstructure:"level" json:"level" yaml:"level"`
	// Encoding 输出格式: json / console
	Encoding string `mapstructure:"encoding" json:"encoding" yaml:"encoding"`
	// OutputPaths 输出目标，例如 ["stdout", "logs/blog.log"]
	OutputPaths []string `mapstructure:"outputPaths" json:"outputPaths" yaml:"outputPaths"`
	// Development 开启后输出更友好的堆栈信息
	Development bool `mapstructure:"development" json:"development" yaml:"development"`
}

// GormLogConfig GORM 日志配置
type GormLogConfig struct {
	Level                     string `mapstructure:"level" json:"level" yaml:"level"`                               // silent / error / warn / info
	SlowThresholdMs           int    `mapstructure:"slowThresholdMs" json:"slowThresholdMs" yaml:"slowThresholdMs"` // 慢查询阈值(毫秒)
	IgnoreRecordNotFoundError bool   `mapstructure:"ignoreRecordNotFoundError" json:"ignoreRecordNotFoundError" yaml:"ignoreRecordNotFoundError"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port           string `mapstructure:"port" json:"port" yaml:"port"`
	RequestTimeout int    `mapstructure:"requestTimeout" json:"requestTimeout" yaml:"requestTimeout"` // 秒
	// AllowOrigins 跨域白名单，为空时允许所有来源
	AllowOrigins []string `mapstructure:"allowOrigins" json:"allowOrigins" yaml:"allowOrigins"`
}

// TracerConfig 分布式追踪配置
type TracerConfig struct {
	Enabled bool `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	// Exporter 取值 otlp 或 stdout
	Exporter     string  `mapstructure:"exporter" json:"exporter" yaml:"exporter"`
	Endpoint     string  `mapstructure:"endpoint" json:"endpoint" yaml:"endpoint"`
	SampleRatio  float64 `mapstructure:"sampleRatio" json:"sampleRatio" yaml:"sampleRatio"`
	InsecureGRPC bool    `mapstructure:"insecure" json:"insecure" yaml:"insecure"`
}
