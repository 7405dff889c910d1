package core

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 BLOG_MYSQLCONFIG_WRITE_DSN 覆盖 mysqlConfig.write.dsn
const EnvPrefix = "BLOG"

// LoadConfig 从 YAML 文件加载配置到 out，环境变量优先级高于文件。
func LoadConfig(path string, out interface{}) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("读取配置文件失败: %w", err)
	}
	// AutomaticEnv 只对 viper 已知的 key 生效，Unmarshal 前显式绑定一遍
	for _, key := range v.AllKeys() {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("绑定环境变量 %s 失败: %w", key, err)
		}
	}
	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("解析配置失败: %w", err)
	}
	return nil
}
