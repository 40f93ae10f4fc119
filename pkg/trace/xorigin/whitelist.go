package xorigin

import (
	"time"
)

// Whitelist 是出站请求目标的白名单。
// 必须通过 [New] 创建；创建后不可变，所有方法并发安全。
type Whitelist struct {
	patterns []Pattern
	cache    *decisionCache
}

// Option 定义白名单可选配置函数类型。
type Option func(*options)

type options struct {
	cacheSize int
	cacheTTL  time.Duration
}

// WithDecisionCache 启用判定结果的 LRU 备忘缓存。
//
// size 为最大缓存条目数（必须 > 0），ttl 为条目过期时间
// （0 表示永不过期，不允许负值）。
//
// 设计决策: 判定是纯函数，缓存只是备忘，语义与逐次重算一致。
// key 为 URL 的 xxhash 值而非 URL 本身，避免缓存长 URL 字符串。
func WithDecisionCache(size int, ttl time.Duration) Option {
	return func(o *options) {
		o.cacheSize = size
		o.cacheTTL = ttl
	}
}

// New 创建白名单。
//
// patterns 不能为空（返回 ErrNoPatterns），且不能包含 nil 模式
// （返回 ErrNilPattern）。模式按声明顺序求值，首个命中即短路。
func New(patterns []Pattern, opts ...Option) (*Whitelist, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}
	for _, p := range patterns {
		if p == nil {
			return nil, ErrNilPattern
		}
	}

	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	w := &Whitelist{
		patterns: append([]Pattern(nil), patterns...),
	}

	if o.cacheSize != 0 || o.cacheTTL != 0 {
		cache, err := newDecisionCache(o.cacheSize, o.cacheTTL)
		if err != nil {
			return nil, err
		}
		w.cache = cache
	}

	return w, nil
}

// MustCompile 从字符串模式列表直接构建白名单，失败时 panic。
// 适用于程序启动时的静态配置。
func MustCompile(specs []string, opts ...Option) *Whitelist {
	patterns, err := Compile(specs)
	if err != nil {
		panic(err)
	}
	w, err := New(patterns, opts...)
	if err != nil {
		panic(err)
	}
	return w
}

// Eligible 返回 rawURL 是否属于被追踪系统。
//
// 空 URL 恒返回 false（请求上下文从未被捕获时的约定值）。
// 按模式声明顺序逐一匹配，首个命中即返回 true。
func (w *Whitelist) Eligible(rawURL string) bool {
	if rawURL == "" {
		return false
	}

	if w.cache != nil {
		if v, ok := w.cache.get(rawURL); ok {
			return v
		}
	}

	match := false
	for _, p := range w.patterns {
		if p.Match(rawURL) {
			match = true
			break
		}
	}

	if w.cache != nil {
		w.cache.put(rawURL, match)
	}
	return match
}

// Patterns 返回模式列表的副本，用于展示与诊断。
func (w *Whitelist) Patterns() []Pattern {
	return append([]Pattern(nil), w.patterns...)
}
