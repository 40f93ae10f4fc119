// Package xlifecycle 管理"当前追踪"的生命周期。
//
// StartTrace 向宿主当前作用域发出两条有序指令：先开启新 span，
// 再设置 transaction 标签（空标签表示清除）。它既被集成外壳在
// 页面就绪信号触发时自动调用（以当前页面 URL 作为标签），也可以
// 由持有宿主上下文的应用代码手动调用。
//
// 宿主在两条指令中抛出的错误不会被本包捕获，按原样向上传播——
// 生命周期控制不吞没宿主故障。
//
// ReadySignal 抽象一次性的"页面/文档就绪"事件源，携带当前页面
// URL。ManualSignal 是可手动触发的实现，适用于测试及由宿主自行
// 决定就绪时机的场景。
package xlifecycle
