// Package xintercept 在出站请求离开进程前注入追踪头。
//
// 拦截器以显式装饰器的形式存在，由集成外壳在装配时构造、由宿主
// 安装到调用点，不做任何全局入口的原地替换——效果可测试、可逆。
// 三条注入路径共享同一套判定与注入流程：
//
//   - WrapCaller: 包装 Open/Send 两步式的请求对象（回调风格）。
//     Open 时记录目标 URL，Send 时判定白名单并通过可选的
//     HeaderSetter 能力逐个设置追踪头。
//   - WrapDo: 包装 (url, options) 形式的单函数请求 API（promise
//     风格）。命中白名单且调用方提供了 options 时，将追踪头合并进
//     options.Header；调用方未提供 options 时不注入（凭空构造
//     options 会改变调用参数形态，可能惊扰检查参数的调用方——
//     这是已知限制，不是缺陷）。
//   - RoundTripper: 标准库 http.RoundTripper 装饰器，Go 客户端的
//     惯用接入点。注入前克隆请求，绝不改动调用方持有的请求对象。
//
// # 记录 URL 的归属
//
// "最近一次 Open 的 URL"记在每个被包装的请求对象上（WrapCaller
// 返回的装饰器持有自己的 URL），并附带不透明的关联 ID。记录
// 归属于单个请求对象，多个在途请求互不覆盖；同一请求对象上
// 重复 Open 会覆盖旧 URL，与底层传输的复用语义一致。
//
// # 尽力而为
//
// 追踪传播绝不改变被包装调用的成败、返回值与参数：宿主上下文
// 解析不到、URL 未命中白名单、请求对象缺少设头能力、options
// 缺失，一律静默跳过并原样放行。只有装配期的参数校验会报错。
//
// 每条路径的判定结果都会计入 OTel 指标
// tracekit.propagation.total（outcome/transport 两个维度）。
package xintercept
