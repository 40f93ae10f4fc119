// Package xhub 定义追踪传播核心所消费的宿主上下文契约。
//
// 拦截器和生命周期控制器不拥有 span 与 transaction，它们只通过
// Hub/Scope 接口向宿主发出指令：解析集成实例、索取当前追踪头、
// 开启新 span、设置 transaction 标签。span ID 生成、采样与事件
// 上报均为宿主职责，不在本工具包范围内。
//
// # 当前 Hub 访问器
//
// CurrentHubFunc 是零参函数，返回请求发起时刻的宿主上下文。
// 拦截器在每次请求时重新调用它，绝不缓存返回值——宿主上下文
// 可能在装配之后、请求之前发生变化。
//
// # OTelHub
//
// OTelHub 是基于 OpenTelemetry 的 Hub 参考实现：追踪头由
// propagation.TextMapPropagator 注入（默认 W3C TraceContext +
// Baggage 组合），span 由注入的 TracerProvider 创建。没有自带
// 追踪后端的宿主可以直接使用它；已有 SDK 的宿主实现 Hub 接口
// 接入即可。
package xhub
