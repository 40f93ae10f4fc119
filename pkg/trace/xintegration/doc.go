// Package xintegration 是追踪传播的集成外壳。
//
// 外壳负责三件事：装配前同步校验配置（源模式列表为空是致命的
// 配置错误，任何装配都不会发生）、按配置开关构造拦截器装饰器、
// 在就绪信号触发时以当前页面 URL 为标签自动开启追踪。
//
// 装配完成后，宿主通过 WrapCaller / WrapDo / RoundTripper 取得
// 装饰器并安装到自己的调用点——装饰器是显式传递的依赖，不做
// 任何进程级全局入口替换。对应开关显式关闭时，这些方法原样
// 返回传入的未包装值。
//
// Setup 只应调用一次：重复调用会重复注册就绪监听并重建拦截器
// （双重包装），属于未支持用法，外壳不做防护（已知限制）。
//
// # 配置加载与热更新
//
// LoadConfig / LoadConfigFromBytes 基于 koanf 支持 YAML 与 JSON。
// Watch 监控配置文件变更并原子替换白名单；开关类配置的变更
// 不随热更新生效，须重建集成。
package xintegration
