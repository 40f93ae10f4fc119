package xintegration

import (
	"time"

	"github.com/omeyang/tracekit/pkg/trace/xorigin"
)

// Config 定义追踪集成的配置面。
type Config struct {
	// OriginPatterns 源模式列表，决定哪些出站目标属于被追踪系统。
	// 不能为空。字符串形态由 xorigin.Compile 自动识别
	// （字面量 / 通配符 / CIDR）。
	OriginPatterns []string `koanf:"origin_patterns"`

	// TraceCaller 是否启用两步式（回调风格）请求路径的包装。
	// nil 视为启用，仅显式 false 时跳过。
	TraceCaller *bool `koanf:"trace_caller"`

	// TraceDo 是否启用单函数（promise 风格）请求路径的包装，
	// 同时约束 RoundTripper 路径。nil 视为启用。
	TraceDo *bool `koanf:"trace_do"`

	// AutoStartOnReady 是否在就绪信号触发时自动开启追踪。
	// nil 视为启用。
	AutoStartOnReady *bool `koanf:"auto_start_on_ready"`

	// CacheSize 白名单判定缓存容量，0 表示不启用缓存。
	CacheSize int `koanf:"cache_size"`

	// CacheTTL 判定缓存条目过期时间，0 表示永不过期。
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// Validate 同步校验配置。
// 源模式列表为空时返回 ErrEmptyOriginPatterns。
func (c Config) Validate() error {
	if len(c.OriginPatterns) == 0 {
		return ErrEmptyOriginPatterns
	}
	return nil
}

func (c Config) traceCaller() bool { return boolOr(c.TraceCaller, true) }

func (c Config) traceDo() bool { return boolOr(c.TraceDo, true) }

func (c Config) autoStartOnReady() bool { return boolOr(c.AutoStartOnReady, true) }

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// buildWhitelist 编译源模式并构建白名单。
func buildWhitelist(cfg Config) (*xorigin.Whitelist, error) {
	patterns, err := xorigin.Compile(cfg.OriginPatterns)
	if err != nil {
		return nil, err
	}

	var opts []xorigin.Option
	if cfg.CacheSize > 0 {
		opts = append(opts, xorigin.WithDecisionCache(cfg.CacheSize, cfg.CacheTTL))
	}
	return xorigin.New(patterns, opts...)
}
