package xintercept

import (
	"net/http"
)

// roundTripper 标准库客户端的注入装饰器
type roundTripper struct {
	next http.RoundTripper
	ic   *Interceptor
}

// RoundTripper 包装 http.RoundTripper，Go 客户端的惯用接入点。
//
//	client := &http.Client{Transport: interceptor.RoundTripper(nil)}
//
// next 为 nil 时使用 http.DefaultTransport。注入前克隆请求，
// 调用方持有的请求对象绝不被改动（RoundTripper 契约要求）。
func (ic *Interceptor) RoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &roundTripper{next: next, ic: ic}
}

func (t *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	rawURL := ""
	if req.URL != nil {
		rawURL = req.URL.String()
	}

	headers, ok := t.ic.traceHeaders(ctx, rawURL, transportRoundTripper)
	if !ok {
		return t.next.RoundTrip(req)
	}

	clone := req.Clone(ctx)
	if clone.Header == nil {
		clone.Header = make(http.Header)
	}
	for name, value := range headers {
		clone.Header.Set(name, value)
	}
	t.ic.metrics.record(ctx, outcomeInjected, transportRoundTripper)

	return t.next.RoundTrip(clone)
}
