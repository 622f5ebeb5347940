package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ==================== 配置定义 ====================

// APIConfig 外部市场 API 配置
type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RetryCount int           `mapstructure:"retry_count"`
}

// AuthConfig 登录凭据
type AuthConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// ValidationConfig 校验配置
// Strict 开启后追加描述上限与标题长度规则
type ValidationConfig struct {
	Strict bool `mapstructure:"strict"`
}

// MockConfig 本地模拟后端配置（开发与测试用）
type MockConfig struct {
	Addr      string `mapstructure:"addr"`
	Database  string `mapstructure:"database"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

// Config 应用配置
type Config struct {
	API        APIConfig        `mapstructure:"api"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Validation ValidationConfig `mapstructure:"validation"`
	Mock       MockConfig       `mapstructure:"mock"`
}

// ==================== 加载 ====================

// Load 加载配置
// 查找顺序：显式路径 > 当前目录 config.yaml；环境变量 MARKET_* 可覆盖
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("api.base_url", "http://localhost:8081")
	v.SetDefault("api.timeout", 20*time.Second)
	v.SetDefault("api.retry_count", 2)
	v.SetDefault("validation.strict", false)
	v.SetDefault("mock.addr", ":8081")
	v.SetDefault("mock.database", "market.db")
	v.SetDefault("mock.jwt_secret", "market-dev-secret-change-in-production")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("MARKET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// 配置文件可选，找不到时全部走默认值与环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && path != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config to struct: %w", err)
	}

	return &cfg, nil
}
