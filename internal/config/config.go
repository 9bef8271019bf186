package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/qingjiang-traffic/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	App      AppConfig      `mapstructure:"app"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Notice   NoticeConfig   `mapstructure:"notice"`
	Export   ExportConfig   `mapstructure:"export"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Security SecurityConfig `mapstructure:"security"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// Addr 监听地址
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
		Service:    "qingjiang-traffic",
	}
}

// AppConfig 站点配置
type AppConfig struct {
	SiteName string `mapstructure:"site_name"`
	Timezone string `mapstructure:"timezone"`
}

// Location 解析时区，失败时回退到本地时区
func (c AppConfig) Location() *time.Location {
	name := strings.TrimSpace(c.Timezone)
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warnw("config_timezone_invalid", "timezone", name, "error", err)
		return time.Local
	}
	return loc
}

// StorageConfig 提交记录存储槽配置
type StorageConfig struct {
	Backend     string `mapstructure:"backend"` // memory / file / database / redis
	SlotKey     string `mapstructure:"slot_key"`
	FileDir     string `mapstructure:"file_dir"`
	MemoryQuota int    `mapstructure:"memory_quota"` // 字节，0 表示不限制
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // sqlite / postgres
	DSN    string             `mapstructure:"dsn"`
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey   string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// AdminConfig 默认管理员
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// UploadConfig 图片预览限制
type UploadConfig struct {
	MaxImages    int      `mapstructure:"max_images"`
	MaxSize      int64    `mapstructure:"max_size"`
	AllowedTypes []string `mapstructure:"allowed_types"`
}

// NoticeConfig 提示消息配置
type NoticeConfig struct {
	DismissSeconds int `mapstructure:"dismiss_seconds"`
}

// DismissAfter 提示消息自动隐藏间隔
func (c NoticeConfig) DismissAfter() time.Duration {
	if c.DismissSeconds <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.DismissSeconds) * time.Second
}

// ExportConfig 导出配置
type ExportConfig struct {
	CSVEncoding string `mapstructure:"csv_encoding"` // utf-8 / gbk
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	SubmitRateLimit RateLimitConfig `mapstructure:"submit_rate_limit"`
	LoginRateLimit  RateLimitConfig `mapstructure:"login_rate_limit"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("../")
	v.AddConfigPath("./etc")
	SetDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	cfg, err := Unmarshal(v)
	if err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}
	return cfg
}

// Unmarshal 将 viper 实例解析为配置
func Unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults 写入全部默认值
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "qingjiang.log")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 10)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("app.site_name", "清江镇交通安全")
	v.SetDefault("app.timezone", "Asia/Shanghai")
	v.SetDefault("storage.backend", "database")
	v.SetDefault("storage.slot_key", "trafficSubmissions")
	v.SetDefault("storage.file_dir", "./data")
	v.SetDefault("storage.memory_quota", 5*1024*1024)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./db/qingjiang.db")
	v.SetDefault("database.pool.max_open_conns", 1)
	v.SetDefault("database.pool.max_idle_conns", 1)
	v.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	v.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "qj")
	v.SetDefault("queue.enabled", false)
	v.SetDefault("queue.host", "127.0.0.1")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.db", 1)
	v.SetDefault("queue.concurrency", 4)
	v.SetDefault("queue.queues", map[string]int{
		"default": 1,
	})
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.expire_hours", 12)
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "")
	v.SetDefault("upload.max_images", 3)
	v.SetDefault("upload.max_size", 10485760)
	v.SetDefault("upload.allowed_types", []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
	})
	v.SetDefault("notice.dismiss_seconds", 3)
	v.SetDefault("export.csv_encoding", "utf-8")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Language",
		"Authorization",
		"X-Client-ID",
		"X-Requested-With",
	})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("security.submit_rate_limit.window_seconds", 60)
	v.SetDefault("security.submit_rate_limit.max_requests", 10)
	v.SetDefault("security.login_rate_limit.window_seconds", 300)
	v.SetDefault("security.login_rate_limit.max_requests", 5)
}
