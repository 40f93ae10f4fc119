package xintercept

import (
	"context"
	"io"
	"net/http"
)

// RequestOptions 是单函数（promise 风格）请求 API 的可选参数。
type RequestOptions struct {
	// Method 请求方法，空值由底层实现决定默认。
	Method string

	// Header 请求头。注入时就地合并：已有条目保留，
	// 同名冲突以追踪头为准。
	Header http.Header

	// Body 请求体，可以为 nil。
	Body io.Reader
}

// DoFunc 是单函数请求 API 的签名。
type DoFunc func(ctx context.Context, rawURL string, opts *RequestOptions) (*http.Response, error)

// WrapDo 包装单函数请求 API。
//
// 命中白名单且 opts 非 nil 时，将追踪头合并进 opts.Header。
// opts 为 nil 时不注入：凭空构造 options 会改变调用参数形态，
// 可能惊扰检查参数的调用方（已知限制）。委托调用与返回值
// 始终保持原样。
func (ic *Interceptor) WrapDo(next DoFunc) DoFunc {
	if next == nil {
		return nil
	}
	return func(ctx context.Context, rawURL string, opts *RequestOptions) (*http.Response, error) {
		ic.beforeDo(ctx, rawURL, opts)
		return next(ctx, rawURL, opts)
	}
}

// beforeDo 在委托之前完成判定与合并。任何跳过都静默发生。
func (ic *Interceptor) beforeDo(ctx context.Context, rawURL string, opts *RequestOptions) {
	if ctx == nil {
		ctx = context.Background()
	}

	headers, ok := ic.traceHeaders(ctx, rawURL, transportDo)
	if !ok {
		return
	}

	if opts == nil {
		// 命中白名单但没有可合并的 options 结构，不注入
		ic.metrics.record(ctx, outcomeNoContext, transportDo)
		return
	}

	if opts.Header == nil {
		opts.Header = make(http.Header)
	}
	for name, value := range headers {
		opts.Header.Set(name, value)
	}
	ic.metrics.record(ctx, outcomeInjected, transportDo)
}
