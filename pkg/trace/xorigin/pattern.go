package xorigin

import (
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"regexp"
	"strings"

	"go4.org/netipx"
)

// Pattern 判断一个出站 URL 是否属于被追踪系统。
//
// 实现必须是纯函数且并发安全：相同输入总是产生相同结果。
type Pattern interface {
	// Match 返回 rawURL 是否命中本模式。空 URL 恒不命中。
	Match(rawURL string) bool

	// String 返回模式的原始表示，用于日志和 CLI 展示。
	String() string
}

// =============================================================================
// Literal 字面量模式
// =============================================================================

// literalPattern 子串包含匹配
type literalPattern struct {
	s string
}

// Literal 创建字面量模式。
//
// 采用子串包含语义：URL 中任意位置包含 s 即命中。
// 例如 Literal("api.example.com") 命中 "https://api.example.com/v1/x"。
func Literal(s string) Pattern {
	return literalPattern{s: s}
}

func (p literalPattern) Match(rawURL string) bool {
	return rawURL != "" && strings.Contains(rawURL, p.s)
}

func (p literalPattern) String() string { return p.s }

// =============================================================================
// Wildcard 通配符模式
// =============================================================================

// wildcardPattern 通配符模式，编译为正则后匹配
type wildcardPattern struct {
	expr string
	re   *regexp.Regexp
}

// Wildcard 创建通配符模式。
//
// expr 中 * 匹配任意字符序列（含空），? 匹配任意单个字符，
// 其余字符按字面量处理。匹配是非锚定的，与 Literal 的子串语义
// 保持一致；需要整串匹配时可自行在 expr 两端加 ^ 与 $ 不支持，
// 请改用 Regexp。
//
// expr 为空时返回 ErrInvalidPattern。
func Wildcard(expr string) (Pattern, error) {
	if expr == "" {
		return nil, fmt.Errorf("%w: empty wildcard expression", ErrInvalidPattern)
	}
	re, err := regexp.Compile(wildcardToRegexp(expr))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, expr, err)
	}
	return wildcardPattern{expr: expr, re: re}, nil
}

func (p wildcardPattern) Match(rawURL string) bool {
	return rawURL != "" && p.re.MatchString(rawURL)
}

func (p wildcardPattern) String() string { return p.expr }

// wildcardToRegexp 将通配符表达式转换为正则表达式源码
func wildcardToRegexp(expr string) string {
	var b strings.Builder
	for _, r := range expr {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}

// =============================================================================
// Regexp 正则模式
// =============================================================================

// regexpPattern 包装调用方自带的正则
type regexpPattern struct {
	re *regexp.Regexp
}

// Regexp 创建正则模式。
//
// re 为 nil 时返回 ErrNilPattern。匹配使用 re.MatchString，
// 锚定与否由调用方的正则自行决定。
func Regexp(re *regexp.Regexp) (Pattern, error) {
	if re == nil {
		return nil, ErrNilPattern
	}
	return regexpPattern{re: re}, nil
}

func (p regexpPattern) Match(rawURL string) bool {
	return rawURL != "" && p.re.MatchString(rawURL)
}

func (p regexpPattern) String() string { return p.re.String() }

// =============================================================================
// CIDR IP 网段模式
// =============================================================================

// cidrPattern 将 URL 的 host 解析为 IP 后与网段集合匹配
type cidrPattern struct {
	exprs []string
	set   *netipx.IPSet
}

// CIDR 创建 IP 网段模式。
//
// prefixes 为一个或多个 CIDR 表达式（如 "10.0.0.0/8"、"fd00::/8"），
// 重叠和相邻的网段会被自动合并。URL 的 host 不是 IP 字面量时恒不命中
// （域名不做解析，DNS 查询不属于判定的职责）。
func CIDR(prefixes ...string) (Pattern, error) {
	if len(prefixes) == 0 {
		return nil, fmt.Errorf("%w: empty cidr list", ErrInvalidPattern)
	}
	var b netipx.IPSetBuilder
	for _, s := range prefixes {
		prefix, err := netip.ParsePrefix(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, s, err)
		}
		b.AddPrefix(prefix)
	}
	set, err := b.IPSet()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return cidrPattern{exprs: append([]string(nil), prefixes...), set: set}, nil
}

func (p cidrPattern) Match(rawURL string) bool {
	addr, ok := hostAddr(rawURL)
	if !ok {
		return false
	}
	return p.set.Contains(addr)
}

func (p cidrPattern) String() string { return strings.Join(p.exprs, ",") }

// hostAddr 提取 URL 的 host 并解析为 IP 地址。
// 兼容带 scheme 的完整 URL 与 "10.0.0.5:8080/path" 这类裸地址形式。
// IPv4-mapped IPv6 地址统一 Unmap，保证与 IPv4 网段可比。
func hostAddr(rawURL string) (netip.Addr, bool) {
	if rawURL == "" {
		return netip.Addr{}, false
	}

	host := ""
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Hostname()
	} else {
		host = rawURL
		if i := strings.IndexByte(host, '/'); i >= 0 {
			host = host[:i]
		}
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		host = strings.TrimPrefix(strings.TrimSuffix(host, "]"), "[")
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

// =============================================================================
// 字符串编译
// =============================================================================

// Compile 将字符串形式的模式列表编译为 Pattern 列表。
//
// 识别规则按优先级：
//  1. CIDR 形态（可被 netip.ParsePrefix 解析）编译为 CIDR 模式
//  2. 含 * 或 ? 的编译为 Wildcard 模式
//  3. 其余编译为 Literal 模式
//
// 任一模式编译失败时整体失败，返回包裹 ErrInvalidPattern 的错误。
// specs 为空时返回 ErrNoPatterns。
func Compile(specs []string) ([]Pattern, error) {
	if len(specs) == 0 {
		return nil, ErrNoPatterns
	}

	patterns := make([]Pattern, 0, len(specs))
	for _, spec := range specs {
		if spec == "" {
			return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
		}

		switch {
		case looksLikeCIDR(spec):
			p, err := CIDR(spec)
			if err != nil {
				return nil, err
			}
			patterns = append(patterns, p)
		case strings.ContainsAny(spec, "*?"):
			p, err := Wildcard(spec)
			if err != nil {
				return nil, err
			}
			patterns = append(patterns, p)
		default:
			patterns = append(patterns, Literal(spec))
		}
	}
	return patterns, nil
}

// looksLikeCIDR 判断字符串是否为 CIDR 形态
func looksLikeCIDR(s string) bool {
	if !strings.Contains(s, "/") {
		return false
	}
	_, err := netip.ParsePrefix(s)
	return err == nil
}
