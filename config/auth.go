package config

// AuthConfig 访问令牌配置
type AuthConfig struct {
	// JWTSecret HS256 签名密钥，生产环境通过 BLOG_AUTHCONFIG_JWTSECRET 注入
	JWTSecret string `mapstructure:"jwtSecret" json:"-" yaml:"jwtSecret"`
	// AccessTokenTTL 令牌有效期(分钟)
	AccessTokenTTL int    `mapstructure:"accessTokenTTL" json:"accessTokenTTL" yaml:"accessTokenTTL"`
	Issuer         string `mapstructure:"issuer" json:"issuer" yaml:"issuer"`
}
