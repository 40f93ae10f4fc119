package xintercept

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/tracekit/pkg/trace/xhub"
)

// Config 定义拦截器的装配参数。
type Config struct {
	// CurrentHub 返回请求发起时刻的宿主上下文。
	// 每次请求都会重新调用，绝不缓存返回值。不能为 nil。
	CurrentHub xhub.CurrentHubFunc

	// Eligible 判定出站 URL 是否属于被追踪系统。不能为 nil。
	Eligible func(rawURL string) bool

	// IntegrationName 注入前需在宿主上解析到的集成名称。
	// 解析不到时视为宿主上下文不可用，静默跳过注入。
	// 为空时跳过此校验。
	IntegrationName string
}

type options struct {
	meterProvider metric.MeterProvider
	logger        *slog.Logger
}

// Option 定义拦截器的可选配置。
type Option func(*options)

// WithMeterProvider 设置 MeterProvider。
// 默认使用 otel.GetMeterProvider()。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(o *options) {
		if provider != nil {
			o.meterProvider = provider
		}
	}
}

// WithLogger 设置日志器。默认使用 slog.Default()。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Interceptor 是三条注入路径共享的装配产物。
// 必须通过 [New] 创建；创建后不可变，所有方法并发安全。
type Interceptor struct {
	currentHub      xhub.CurrentHubFunc
	eligible        func(string) bool
	integrationName string
	logger          *slog.Logger
	metrics         *propagationMetrics
}

// New 创建拦截器。
// cfg.CurrentHub 为 nil 时返回 ErrNilHubFunc，
// cfg.Eligible 为 nil 时返回 ErrNilEligible。
func New(cfg Config, opts ...Option) (*Interceptor, error) {
	if cfg.CurrentHub == nil {
		return nil, ErrNilHubFunc
	}
	if cfg.Eligible == nil {
		return nil, ErrNilEligible
	}

	o := &options{
		meterProvider: otel.GetMeterProvider(),
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	metrics, err := newPropagationMetrics(o.meterProvider)
	if err != nil {
		return nil, err
	}

	return &Interceptor{
		currentHub:      cfg.CurrentHub,
		eligible:        cfg.Eligible,
		integrationName: cfg.IntegrationName,
		logger:          o.logger,
		metrics:         metrics,
	}, nil
}

// resolveHub 在请求时刻重新解析宿主上下文。
// 访问器返回 nil 或集成名称解析不到时返回 nil。
func (ic *Interceptor) resolveHub() xhub.Hub {
	hub := ic.currentHub()
	if hub == nil {
		return nil
	}
	if ic.integrationName != "" {
		if _, ok := hub.Integration(ic.integrationName); !ok {
			return nil
		}
	}
	return hub
}

// traceHeaders 执行共享的判定流程：宿主解析 → 白名单 → 取头。
// 跳过时记录对应的 outcome 并返回 ok=false；ok=true 时由调用方
// 完成注入并记录最终 outcome。
func (ic *Interceptor) traceHeaders(ctx context.Context, rawURL, transport string) (map[string]string, bool) {
	if rawURL == "" {
		ic.metrics.record(ctx, outcomeNoContext, transport)
		return nil, false
	}

	hub := ic.resolveHub()
	if hub == nil {
		ic.metrics.record(ctx, outcomeNoContext, transport)
		return nil, false
	}

	if !ic.eligible(rawURL) {
		ic.metrics.record(ctx, outcomeNotEligible, transport)
		return nil, false
	}

	return hub.TraceHeaders(ctx), true
}
