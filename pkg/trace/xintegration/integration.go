package xintegration

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/tracekit/pkg/trace/xhub"
	"github.com/omeyang/tracekit/pkg/trace/xintercept"
	"github.com/omeyang/tracekit/pkg/trace/xlifecycle"
	"github.com/omeyang/tracekit/pkg/trace/xorigin"
)

// Name 是集成在宿主上注册的名称，拦截器注入前会在当前 Hub 上
// 按此名称解析集成实例。
const Name = "tracing"

// EventRegistrar 是宿主的事件处理器注册能力。
// 外壳按契约接受它，但当前不注册任何处理器。
type EventRegistrar interface {
	RegisterEventProcessor(fn func(event any) any)
}

type integrationOptions struct {
	logger        *slog.Logger
	meterProvider metric.MeterProvider
	ready         xlifecycle.ReadySignal
}

// Option 定义集成的可选配置。
type Option func(*integrationOptions)

// WithLogger 设置日志器。默认使用 slog.Default()。
func WithLogger(logger *slog.Logger) Option {
	return func(o *integrationOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMeterProvider 设置拦截器指标使用的 MeterProvider。
// 默认使用 otel 全局 MeterProvider。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(o *integrationOptions) {
		if provider != nil {
			o.meterProvider = provider
		}
	}
}

// WithReadySignal 注入就绪信号源。
// 未注入时不注册就绪监听，AutoStartOnReady 配置失去作用对象。
func WithReadySignal(sig xlifecycle.ReadySignal) Option {
	return func(o *integrationOptions) {
		if sig != nil {
			o.ready = sig
		}
	}
}

// Integration 是追踪传播的集成实例。
// 必须通过 [New] 创建；Setup 完成装配后，通过 WrapCaller /
// WrapDo / RoundTripper 取得装饰器。
type Integration struct {
	cfg  Config
	opts integrationOptions

	whitelist   atomic.Pointer[xorigin.Whitelist]
	interceptor atomic.Pointer[xintercept.Interceptor]
	cancelReady func()
}

// New 创建集成实例，同步校验配置。
// 源模式列表为空返回 ErrEmptyOriginPatterns；模式编译失败返回
// 包裹 xorigin.ErrInvalidPattern 的错误。校验失败时不发生任何装配。
func New(cfg Config, opts ...Option) (*Integration, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w, err := buildWhitelist(cfg)
	if err != nil {
		return nil, fmt.Errorf("xintegration: compile origin patterns: %w", err)
	}

	o := integrationOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	i := &Integration{cfg: cfg, opts: o}
	i.whitelist.Store(w)
	return i, nil
}

// Setup 完成一次性装配，按顺序执行：
//  1. 构造拦截器（持有当前 Hub 访问器与白名单判定）
//  2. 当 AutoStartOnReady 未显式关闭且注入了就绪信号时，
//     注册就绪监听，触发时以页面 URL 为标签开启追踪
//
// reg 按契约被接受，当前不消费。currentHub 在每次请求时被重新
// 调用，外壳与拦截器都不缓存其返回值。
//
// Setup 只应调用一次；重复调用重建拦截器并重复注册监听（双重
// 包装），属于未支持用法，不做防护。
func (i *Integration) Setup(reg EventRegistrar, currentHub xhub.CurrentHubFunc) error {
	if currentHub == nil {
		return ErrNilHubFunc
	}
	_ = reg

	var icOpts []xintercept.Option
	if i.opts.meterProvider != nil {
		icOpts = append(icOpts, xintercept.WithMeterProvider(i.opts.meterProvider))
	}
	icOpts = append(icOpts, xintercept.WithLogger(i.opts.logger))

	ic, err := xintercept.New(xintercept.Config{
		CurrentHub:      currentHub,
		Eligible:        i.Eligible,
		IntegrationName: Name,
	}, icOpts...)
	if err != nil {
		return err
	}
	i.interceptor.Store(ic)

	if i.cfg.autoStartOnReady() && i.opts.ready != nil {
		i.cancelReady = i.opts.ready.OnReady(func(pageURL string) {
			xlifecycle.StartTrace(context.Background(), currentHub(), pageURL)
		})
	}
	return nil
}

// Eligible 判定出站 URL 是否命中当前白名单。
func (i *Integration) Eligible(rawURL string) bool {
	w := i.whitelist.Load()
	if w == nil {
		return false
	}
	return w.Eligible(rawURL)
}

// Patterns 返回当前白名单的模式列表副本。
func (i *Integration) Patterns() []xorigin.Pattern {
	w := i.whitelist.Load()
	if w == nil {
		return nil
	}
	return w.Patterns()
}

// WrapCaller 返回两步式请求路径的装饰器。
// 未 Setup 或 TraceCaller 显式关闭时原样返回 next。
func (i *Integration) WrapCaller(next xintercept.Caller) xintercept.Caller {
	ic := i.interceptor.Load()
	if ic == nil || !i.cfg.traceCaller() {
		return next
	}
	return ic.WrapCaller(next)
}

// WrapDo 返回单函数请求路径的装饰器。
// 未 Setup 或 TraceDo 显式关闭时原样返回 next。
func (i *Integration) WrapDo(next xintercept.DoFunc) xintercept.DoFunc {
	ic := i.interceptor.Load()
	if ic == nil || !i.cfg.traceDo() {
		return next
	}
	return ic.WrapDo(next)
}

// RoundTripper 返回标准库客户端路径的装饰器，受 TraceDo 开关约束。
// 未 Setup 或开关显式关闭时返回 next（next 为 nil 时返回
// http.DefaultTransport）。
func (i *Integration) RoundTripper(next http.RoundTripper) http.RoundTripper {
	ic := i.interceptor.Load()
	if ic == nil || !i.cfg.traceDo() {
		if next == nil {
			return http.DefaultTransport
		}
		return next
	}
	return ic.RoundTripper(next)
}

// Reconfigure 用新配置重建白名单并原子替换，供配置热更新使用。
// 只有源模式与缓存配置随之生效；开关类配置须重建集成。
func (i *Integration) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	w, err := buildWhitelist(cfg)
	if err != nil {
		return fmt.Errorf("xintegration: compile origin patterns: %w", err)
	}
	i.whitelist.Store(w)
	return nil
}

// Close 注销就绪监听。已注销或未注册时调用无效果。
func (i *Integration) Close() {
	if i.cancelReady != nil {
		i.cancelReady()
		i.cancelReady = nil
	}
}
