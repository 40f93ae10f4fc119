package xintercept

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Caller 是两步式（回调风格）请求对象的最小操作面。
// 一个 Caller 实例对应一次请求的生命周期：先 Open 后 Send。
type Caller interface {
	// Open 记录请求方法与目标 URL，尚未发出请求。
	Open(method, rawURL string) error

	// Send 发出请求。body 可以为 nil。
	Send(body io.Reader) error
}

// HeaderSetter 是请求对象可选的设头能力。
// 未实现此接口的请求对象会被静默跳过，不视为错误。
type HeaderSetter interface {
	SetRequestHeader(name, value string)
}

// wrappedCaller 装饰单个请求对象。
// 记录的 URL 归属于本装饰器（即单个请求对象），多个在途请求
// 互不干扰；同一对象上重复 Open 覆盖旧 URL。
type wrappedCaller struct {
	next Caller
	ic   *Interceptor
	id   string // 不透明关联 ID，Open 与 Send 之间的对账凭据
	url  string
}

// WrapCaller 包装一个两步式请求对象。
// next 为 nil 时返回 nil。Open 与 Send 始终以原参数委托给
// next 并原样返回其结果。
func (ic *Interceptor) WrapCaller(next Caller) Caller {
	if next == nil {
		return nil
	}
	return &wrappedCaller{
		next: next,
		ic:   ic,
		id:   uuid.NewString(),
	}
}

func (c *wrappedCaller) Open(method, rawURL string) error {
	c.url = rawURL
	return c.next.Open(method, rawURL)
}

func (c *wrappedCaller) Send(body io.Reader) error {
	c.ic.beforeSend(c)
	return c.next.Send(body)
}

// beforeSend 在委托 Send 之前完成判定与注入。
// 任何跳过都静默发生，不影响随后的委托调用。
func (ic *Interceptor) beforeSend(c *wrappedCaller) {
	ctx := context.Background()

	headers, ok := ic.traceHeaders(ctx, c.url, transportCaller)
	if !ok {
		return
	}

	setter, hasCap := c.next.(HeaderSetter)
	if !hasCap {
		ic.metrics.record(ctx, outcomeNoCapability, transportCaller)
		return
	}

	for name, value := range headers {
		setter.SetRequestHeader(name, value)
	}
	ic.metrics.record(ctx, outcomeInjected, transportCaller)
	ic.logger.LogAttrs(ctx, slog.LevelDebug, "xintercept: trace headers injected",
		slog.String("transport", transportCaller),
		slog.String("request_id", c.id),
		slog.String("url", c.url))
}
