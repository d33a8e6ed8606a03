package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultSessionSecret 仅用于本地开发，生产环境必须通过 SESSION_SECRET 覆盖。
const DefaultSessionSecret = "change_this_secret"

// Config 聚合整个服务的配置项。
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Session  SessionConfig
	Operator OperatorConfig
	Links    LinksConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	addr, err := resolveAddr(cfg.Server.Port)
	if err != nil {
		return nil, err
	}
	cfg.Server.Addr = addr

	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL value %q: must be positive", cfg.Session.TTL)
	}
	if strings.TrimSpace(cfg.Storage.Path) == "" {
		return nil, fmt.Errorf("DATABASE_PATH must not be empty")
	}

	return &cfg, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Port           string   `env:"PORT" envDefault:"3000"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Addr 由 Port 推导而来。
	Addr string
}

// resolveAddr 解析服务器监听地址。
func resolveAddr(port string) (string, error) {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "3000"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":3000" 或 "127.0.0.1:3000"。
		return port, nil
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}

	return ":" + port, nil
}

// StorageConfig 描述反馈数据库位置。
type StorageConfig struct {
	Path string `env:"DATABASE_PATH" envDefault:"data/feedback.db"`
}

// SessionConfig 描述会话 cookie 与谜题调试开关。
type SessionConfig struct {
	Secret          string        `env:"SESSION_SECRET" envDefault:"change_this_secret"`
	TTL             time.Duration `env:"SESSION_TTL" envDefault:"1h"`
	SecureCookie    bool          `env:"SESSION_SECURE_COOKIE" envDefault:"false"`
	DebugShowAnswer bool          `env:"DEBUG_SHOW_ANSWER" envDefault:"false"`
}

// UsingDefaultSecret 表示是否仍在使用开发用密钥。
func (c SessionConfig) UsingDefaultSecret() bool {
	return c.Secret == DefaultSessionSecret
}

// OperatorConfig 保护反馈列表与导出接口。留空表示不校验。
type OperatorConfig struct {
	TokenHash string `env:"ADMIN_TOKEN_HASH"`
}

// Enabled 表示是否配置了运维口令。
func (c OperatorConfig) Enabled() bool {
	return strings.TrimSpace(c.TokenHash) != ""
}

// LinksConfig 是前端展示的外部链接。
type LinksConfig struct {
	Projects  string `env:"LINK_PROJECTS" envDefault:"https://github.com/mohitgitgeek"`
	YouTube   string `env:"LINK_YOUTUBE" envDefault:"https://www.youtube.com/c/MohitTheTechGeek/"`
	Instagram string `env:"LINK_INSTAGRAM" envDefault:"https://www.instagram.com/mohitvuyala2021/"`
	LinkedIn  string `env:"LINK_LINKEDIN" envDefault:"https://www.linkedin.com/in/mohit-vuyala/"`
	Blog      string `env:"LINK_BLOG" envDefault:"/blog.html"`
}

// Map 返回 /config 接口使用的链接表，空值会被省略。
func (c LinksConfig) Map() map[string]string {
	links := map[string]string{
		"projects":  c.Projects,
		"youtube":   c.YouTube,
		"instagram": c.Instagram,
		"linkedin":  c.LinkedIn,
		"blog":      c.Blog,
	}
	for key, value := range links {
		if strings.TrimSpace(value) == "" {
			delete(links, key)
		}
	}
	return links
}
