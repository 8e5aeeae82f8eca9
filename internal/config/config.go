package config

import (
	"fmt"
	"math"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	MaxDurationMinutes float64 `mapstructure:"MAX_DURATION_MINUTES"` // 超过该时长的会话不参与统计
	Workers            int     `mapstructure:"WORKERS"`
	SkipFailed         bool    `mapstructure:"SKIP_FAILED"` // false: 任一文件解码失败即中止

	// 服务模式
	Port             string `mapstructure:"PORT"`
	DBPath           string `mapstructure:"DB_PATH"`
	JWTSecret        string `mapstructure:"JWT_SECRET"`         // 为空时不启用鉴权
	AnalyzeRateLimit int    `mapstructure:"ANALYZE_RATE_LIMIT"` // 每分钟每个客户端的分析请求数
	AnalyzeRoot      string `mapstructure:"ANALYZE_ROOT"`       // 接口只能分析该目录下的会话
}

// Load 加载配置，环境变量格式错误或取值非法时返回错误
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("MAX_DURATION_MINUTES", 70.0)
	v.SetDefault("WORKERS", 4)
	v.SetDefault("SKIP_FAILED", false)
	v.SetDefault("PORT", ":8080")
	v.SetDefault("DB_PATH", "file::memory:?cache=shared")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("ANALYZE_RATE_LIMIT", 30)
	v.SetDefault("ANALYZE_ROOT", "./data/sessions")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	d := cfg.MaxDurationMinutes
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return nil, fmt.Errorf("MAX_DURATION_MINUTES must be a positive number, got %v", d)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &cfg, nil
}
