package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`   // 查询服务配置
	Database DatabaseConfig `mapstructure:"database"` // 数据库配置
	Input    InputConfig    `mapstructure:"input"`    // 源文件配置
	Log      LogConfig      `mapstructure:"log"`      // 日志配置
	Blocks   map[string]int `mapstructure:"blocks"`   // 区块定数覆盖（区块名→定数）
}

// ServerConfig 查询服务配置
type ServerConfig struct {
	Port int    `mapstructure:"port" validate:"min=1,max=65535"`          // 服务端口
	Mode string `mapstructure:"mode" validate:"oneof=debug release test"` // Gin运行模式：debug/release/test
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver" validate:"oneof=sqlite postgres"`           // 驱动：sqlite/postgres
	DSN             string        `mapstructure:"dsn" validate:"required"`                           // 连接DSN（sqlite 为文件路径）
	LogLevel        string        `mapstructure:"log_level" validate:"oneof=silent error warn info"` // GORM日志级别
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"min=0"`                   // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"min=0"`                   // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`                                 // 连接最大存活时间
}

// InputConfig 源文件目录与读取方式
type InputConfig struct {
	ShosenkyoDir   string `mapstructure:"shosenkyo_dir" validate:"required"`         // 小选举区 CSV 目录
	HireidaihyoDir string `mapstructure:"hireidaihyo_dir" validate:"required"`       // 比例代表 CSV 目录
	Pattern        string `mapstructure:"pattern" validate:"required"`               // 文件匹配模式
	Encoding       string `mapstructure:"encoding" validate:"oneof=utf-8 shift_jis"` // 文件编码
	Workers        int    `mapstructure:"workers" validate:"min=1,max=64"`           // 并发解析的文件数
}

// LogConfig 日志配置，File 为空时输出到标准输出
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=text json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"min=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"min=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "election.db")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("input.shosenkyo_dir", "raw_data/shosenkyo")
	v.SetDefault("input.hireidaihyo_dir", "raw_data/hireidaihyo")
	v.SetDefault("input.pattern", "*.csv")
	v.SetDefault("input.encoding", "utf-8")
	v.SetDefault("input.workers", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// LoadConfig 加载配置文件（<dir>/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig(dir string) (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate 校验配置取值
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("配置校验失败: %w", err)
	}
	for block, seats := range c.Blocks {
		if seats < 0 {
			return fmt.Errorf("配置校验失败: 区块%s的定数不能为负数", block)
		}
	}
	return nil
}
