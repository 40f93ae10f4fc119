// Package xorigin 提供出站请求目标的白名单判定能力。
//
// 白名单（Whitelist）由一组有序的源模式（Pattern）构成，用于判断一个
// 出站 URL 是否属于被追踪系统。只有命中白名单的请求才会被注入
// 追踪头，其余请求原样放行。
//
// # 模式类型
//
//   - Literal: 字面量模式，子串包含匹配（与常见前端 SDK 的字符串语义一致）
//   - Wildcard: 通配符模式，支持 * 和 ?，编译为正则后非锚定匹配
//   - Regexp: 调用方自带的正则表达式
//   - CIDR: 将 URL 的 host 解析为 IP 后与 CIDR 集合匹配（基于 go4.org/netipx）
//
// Compile 按字符串形态自动识别模式类型：CIDR 形态优先，
// 含 * 或 ? 的视为 Wildcard，其余为 Literal。
//
// # 判定语义
//
// Eligible 对空 URL 恒返回 false；按模式声明顺序逐一匹配，
// 首个命中即短路返回。顺序只影响匹配开销，不影响布尔结果。
// 判定是纯函数：相同 (url, patterns) 输入总是产生相同结果。
//
// # 决策缓存
//
// WithDecisionCache 启用基于 LRU 的判定缓存
// （hashicorp/golang-lru/v2 expirable，key 为 URL 的 xxhash）。
// 缓存只是对纯函数结果的备忘，语义与逐次重算完全一致。
//
// # 并发安全
//
// Whitelist 创建后不可变，所有方法并发安全。
package xorigin
