package xhub

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultInstrumentationName = "github.com/omeyang/tracekit/pkg/trace/xhub"

	// defaultSpanName 新 span 的初始名称，SetTransaction 会覆盖它
	defaultSpanName = "trace"
)

type otelConfig struct {
	instrumentationName string
	tracerProvider      trace.TracerProvider
	propagator          propagation.TextMapPropagator
}

// OTelOption 定义 OTelHub 的配置选项。
type OTelOption func(*otelConfig)

// WithInstrumentationName 设置 OTel instrumentation 名称。
func WithInstrumentationName(name string) OTelOption {
	return func(cfg *otelConfig) {
		if name != "" {
			cfg.instrumentationName = name
		}
	}
}

// WithTracerProvider 设置 TracerProvider。
// 默认使用 otel.GetTracerProvider()。
func WithTracerProvider(provider trace.TracerProvider) OTelOption {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.tracerProvider = provider
		}
	}
}

// WithPropagator 设置自定义的 Propagator。
// 默认为 W3C TraceContext 与 Baggage 的组合。
func WithPropagator(propagator propagation.TextMapPropagator) OTelOption {
	return func(cfg *otelConfig) {
		if propagator != nil {
			cfg.propagator = propagator
		}
	}
}

// OTelHub 是基于 OpenTelemetry 的 Hub 实现。
//
// 当前作用域持有最近一次 BeginSpan 开启的 span；TraceHeaders
// 将该 span 的上下文经 propagator 注入为追踪头。所有方法并发安全。
type OTelHub struct {
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator

	mu           sync.Mutex
	integrations map[string]any
	spanCtx      context.Context
	span         trace.Span
	transaction  string
}

var _ Hub = (*OTelHub)(nil)

// NewOTelHub 创建 OTelHub。
func NewOTelHub(opts ...OTelOption) *OTelHub {
	cfg := &otelConfig{
		instrumentationName: defaultInstrumentationName,
		tracerProvider:      otel.GetTracerProvider(),
		propagator: propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &OTelHub{
		tracer:       cfg.tracerProvider.Tracer(cfg.instrumentationName),
		propagator:   cfg.propagator,
		integrations: make(map[string]any),
	}
}

// RegisterIntegration 注册集成实例，供 Integration 解析。
// 同名重复注册覆盖旧值。
func (h *OTelHub) RegisterIntegration(name string, integration any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.integrations[name] = integration
}

// Integration 按名称解析已注册的集成实例。
func (h *OTelHub) Integration(name string) (any, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.integrations[name]
	return v, ok
}

// TraceHeaders 产出当前 span 的追踪头。
//
// 当前作用域没有活跃 span 时，退而注入 ctx 中携带的 span 上下文；
// 两者都没有时返回空映射。每次调用产出新的映射实例。
func (h *OTelHub) TraceHeaders(ctx context.Context) map[string]string {
	if ctx == nil {
		ctx = context.Background()
	}

	h.mu.Lock()
	if h.spanCtx != nil && trace.SpanContextFromContext(h.spanCtx).IsValid() {
		ctx = h.spanCtx
	}
	h.mu.Unlock()

	headers := make(map[string]string)
	h.propagator.Inject(ctx, propagation.MapCarrier(headers))
	return headers
}

// ConfigureScope 在当前作用域上执行 fn。
//
// fn 在 hub 的互斥锁内执行，不要在 fn 中回调 hub 的其他方法。
func (h *OTelHub) ConfigureScope(fn func(Scope)) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	fn((*otelScope)(h))
}

// Transaction 返回当前 transaction 标签，未设置时为空字符串。
func (h *OTelHub) Transaction() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.transaction
}

// Close 结束当前作用域上的活跃 span。
// 进程退出前调用，保证最后一个 span 被上报。
func (h *OTelHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.endSpanLocked()
}

func (h *OTelHub) endSpanLocked() {
	if h.span != nil {
		h.span.End()
		h.span = nil
		h.spanCtx = nil
	}
}

// otelScope 是持锁状态下的作用域视图，生命周期仅限 ConfigureScope 回调。
type otelScope OTelHub

func (s *otelScope) BeginSpan(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	h := (*OTelHub)(s)

	// 开启新 span 前结束旧 span，避免泄漏未结束的 span
	h.endSpanLocked()

	name := defaultSpanName
	if h.transaction != "" {
		name = h.transaction
	}
	h.spanCtx, h.span = h.tracer.Start(ctx, name)
}

func (s *otelScope) SetTransaction(label string) {
	h := (*OTelHub)(s)
	h.transaction = label

	if h.span == nil {
		return
	}
	if label == "" {
		h.span.SetName(defaultSpanName)
		return
	}
	h.span.SetName(label)
}
