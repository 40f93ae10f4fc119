package xintegration

import (
	"context"
	"io"
	"sync"

	"github.com/omeyang/tracekit/pkg/trace/xhub"
)

// ===== 测试用 Hub =====

// fakeHub 实现 xhub.Hub，返回固定追踪头并记录作用域操作。
type fakeHub struct {
	mu           sync.Mutex
	integrations map[string]any
	headers      map[string]string
	scope        *fakeScope
}

func newFakeHub() *fakeHub {
	return &fakeHub{
		integrations: make(map[string]any),
		headers: map[string]string{
			"traceparent": "00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01",
			"tracestate":  "vendor=value",
		},
		scope: &fakeScope{},
	}
}

func (h *fakeHub) register(name string, integration any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.integrations[name] = integration
}

func (h *fakeHub) Integration(name string) (any, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.integrations[name]
	return v, ok
}

func (h *fakeHub) TraceHeaders(context.Context) map[string]string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[string]string, len(h.headers))
	for k, v := range h.headers {
		out[k] = v
	}
	return out
}

func (h *fakeHub) ConfigureScope(fn func(xhub.Scope)) {
	fn(h.scope)
}

// fakeScope 记录作用域调用顺序与当前事务标签。
type fakeScope struct {
	mu          sync.Mutex
	calls       []string
	transaction string
}

func (s *fakeScope) BeginSpan(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "begin_span")
}

func (s *fakeScope) SetTransaction(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "set_transaction")
	s.transaction = label
}

func (s *fakeScope) snapshot() ([]string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...), s.transaction
}

// ===== 测试用 Caller =====

// fakeCaller 实现 Caller 与 HeaderSetter，记录注入的请求头。
type fakeCaller struct {
	openedURL string
	sent      bool
	headers   map[string]string
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{headers: make(map[string]string)}
}

func (c *fakeCaller) Open(method, rawURL string) error {
	c.openedURL = rawURL
	return nil
}

func (c *fakeCaller) Send(io.Reader) error {
	c.sent = true
	return nil
}

func (c *fakeCaller) SetRequestHeader(name, value string) {
	c.headers[name] = value
}

// ===== 测试用宿主注册器 =====

type fakeRegistrar struct {
	processors int
}

func (r *fakeRegistrar) RegisterEventProcessor(fn func(event any) any) {
	r.processors++
}
