package xintercept

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	instrumentationName = "github.com/omeyang/tracekit/pkg/trace/xintercept"

	metricPropagationTotal = "tracekit.propagation.total"
)

// 注入结果分类
const (
	outcomeInjected     = "injected"      // 追踪头已注入
	outcomeNotEligible  = "not_eligible"  // URL 未命中白名单
	outcomeNoContext    = "no_context"    // 宿主上下文不可用 / 请求上下文缺失
	outcomeNoCapability = "no_capability" // 请求对象缺少设头能力
)

// 注入路径
const (
	transportCaller       = "caller"
	transportDo           = "do"
	transportRoundTripper = "roundtripper"
)

// propagationMetrics 注入路径的 OTel 指标。
type propagationMetrics struct {
	total metric.Int64Counter
}

func newPropagationMetrics(provider metric.MeterProvider) (*propagationMetrics, error) {
	meter := provider.Meter(instrumentationName)

	total, err := meter.Int64Counter(
		metricPropagationTotal,
		metric.WithDescription("outgoing requests seen by the propagation interceptors"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xintercept: create counter failed: %w", err)
	}

	return &propagationMetrics{total: total}, nil
}

func (m *propagationMetrics) record(ctx context.Context, outcome, transport string) {
	m.total.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.String("transport", transport),
	))
}
