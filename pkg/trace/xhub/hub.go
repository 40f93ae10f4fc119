package xhub

import "context"

// Hub 是请求发起时刻的宿主追踪上下文。
//
// 所有方法都必须是并发安全的。追踪传播是尽力而为的：
// Hub 的任何方法都不应因追踪失败而影响宿主请求本身。
type Hub interface {
	// Integration 按名称解析已注册的集成实例。
	// 未注册时返回 (nil, false)，调用方据此静默跳过注入。
	Integration(name string) (any, bool)

	// TraceHeaders 按需产出当前 span 的追踪头。
	// 返回值对调用方是不透明且单次调用内不可变的映射，
	// 无可用追踪上下文时可返回空映射或 nil。
	TraceHeaders(ctx context.Context) map[string]string

	// ConfigureScope 在当前作用域上执行 fn。
	// fn 内对 Scope 的修改立即生效。
	ConfigureScope(fn func(Scope))
}

// Scope 是宿主当前作用域暴露给生命周期控制器的最小操作面。
type Scope interface {
	// BeginSpan 在当前作用域上开启一个新 span。
	BeginSpan(ctx context.Context)

	// SetTransaction 设置 transaction 标签。
	// 空字符串表示清除标签。
	SetTransaction(label string)
}

// CurrentHubFunc 返回请求发起时刻的宿主上下文。
//
// 必须在每次请求时重新调用，绝不缓存返回值。
// 返回 nil 表示此刻没有可用的宿主上下文，请求原样放行。
type CurrentHubFunc func() Hub

// =============================================================================
// NoopHub
// =============================================================================

// NoopHub 是空实现，供未启用追踪的宿主占位使用。
// 所有注入路径在它上面都会静默跳过。
type NoopHub struct{}

var _ Hub = NoopHub{}

func (NoopHub) Integration(string) (any, bool) { return nil, false }

func (NoopHub) TraceHeaders(context.Context) map[string]string { return nil }

func (NoopHub) ConfigureScope(fn func(Scope)) {
	if fn != nil {
		fn(noopScope{})
	}
}

type noopScope struct{}

func (noopScope) BeginSpan(context.Context) {}

func (noopScope) SetTransaction(string) {}
