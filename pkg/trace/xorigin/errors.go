package xorigin

import "errors"

// 白名单构建相关的错误。
var (
	// ErrNoPatterns 表示模式列表为空
	ErrNoPatterns = errors.New("xorigin: patterns must not be empty")

	// ErrNilPattern 表示模式列表中存在 nil 模式
	ErrNilPattern = errors.New("xorigin: pattern must not be nil")

	// ErrInvalidPattern 表示模式字符串无法编译
	ErrInvalidPattern = errors.New("xorigin: invalid pattern")

	// ErrInvalidCacheSize 表示决策缓存容量不合法（必须 > 0）
	ErrInvalidCacheSize = errors.New("xorigin: cache size must be > 0")

	// ErrInvalidCacheTTL 表示决策缓存 TTL 不合法（不允许负值）
	ErrInvalidCacheTTL = errors.New("xorigin: cache ttl must be >= 0")
)
