package xlifecycle

import (
	"context"

	"github.com/omeyang/tracekit/pkg/trace/xhub"
)

// StartTrace 在宿主当前作用域上开启新追踪。
//
// 两条指令按固定顺序下发：先 BeginSpan，再 SetTransaction。
// transaction 为空字符串表示清除标签。宿主在执行指令时产生的
// panic 按原样向上传播，本函数不做捕获。
//
// hub 为 nil 时静默返回（此刻没有可用的宿主上下文，与注入
// 路径的跳过语义一致）。
func StartTrace(ctx context.Context, hub xhub.Hub, transaction string) {
	if hub == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	hub.ConfigureScope(func(scope xhub.Scope) {
		scope.BeginSpan(ctx)
		scope.SetTransaction(transaction)
	})
}
