package xintercept_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/omeyang/tracekit/pkg/trace/xhub"
	"github.com/omeyang/tracekit/pkg/trace/xintercept"
	"github.com/omeyang/tracekit/pkg/trace/xorigin"
)

// =============================================================================
// Mock 实现 - 用于单元测试
// =============================================================================

const testIntegration = "tracing"

// fakeHub 实现 xhub.Hub，返回固定的追踪头
type fakeHub struct {
	headers      map[string]string
	integrations map[string]any
	headerCalls  int
}

func newFakeHub() *fakeHub {
	return &fakeHub{
		headers: map[string]string{
			"traceparent": "00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01",
			"tracestate":  "vendor=x",
		},
		integrations: map[string]any{testIntegration: struct{}{}},
	}
}

func (h *fakeHub) Integration(name string) (any, bool) {
	v, ok := h.integrations[name]
	return v, ok
}

func (h *fakeHub) TraceHeaders(context.Context) map[string]string {
	h.headerCalls++
	return h.headers
}

func (h *fakeHub) ConfigureScope(func(xhub.Scope)) {}

// fakeCaller 实现 Caller 与 HeaderSetter，记录事件顺序
type fakeCaller struct {
	events  []string
	headers map[string]string

	openMethod string
	openURL    string
	sentBody   io.Reader

	openErr error
	sendErr error
}

func (c *fakeCaller) Open(method, rawURL string) error {
	c.events = append(c.events, "open")
	c.openMethod = method
	c.openURL = rawURL
	return c.openErr
}

func (c *fakeCaller) Send(body io.Reader) error {
	c.events = append(c.events, "send")
	c.sentBody = body
	return c.sendErr
}

func (c *fakeCaller) SetRequestHeader(name, value string) {
	c.events = append(c.events, "set_header")
	if c.headers == nil {
		c.headers = make(map[string]string)
	}
	c.headers[name] = value
}

// bareCaller 实现 Caller 但不具备设头能力
type bareCaller struct {
	sent bool
}

func (c *bareCaller) Open(string, string) error { return nil }

func (c *bareCaller) Send(io.Reader) error {
	c.sent = true
	return nil
}

// newInterceptor 构建指向固定 hub 的拦截器
func newInterceptor(t *testing.T, hub xhub.Hub, patterns ...string) *xintercept.Interceptor {
	t.Helper()
	if len(patterns) == 0 {
		patterns = []string{"https://api.example.com"}
	}
	w := xorigin.MustCompile(patterns)

	ic, err := xintercept.New(xintercept.Config{
		CurrentHub:      func() xhub.Hub { return hub },
		Eligible:        w.Eligible,
		IntegrationName: testIntegration,
	})
	require.NoError(t, err)
	return ic
}
