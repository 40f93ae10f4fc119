package xorigin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingPattern 记录 Match 调用次数，用于验证短路求值
type countingPattern struct {
	result bool
	calls  int
}

func (p *countingPattern) Match(string) bool {
	p.calls++
	return p.result
}

func (p *countingPattern) String() string { return "counting" }

func TestNew(t *testing.T) {
	t.Run("空模式列表报错", func(t *testing.T) {
		_, err := New(nil)
		require.ErrorIs(t, err, ErrNoPatterns)
	})

	t.Run("nil 模式报错", func(t *testing.T) {
		_, err := New([]Pattern{Literal("a"), nil})
		require.ErrorIs(t, err, ErrNilPattern)
	})

	t.Run("非法缓存容量报错", func(t *testing.T) {
		_, err := New([]Pattern{Literal("a")}, WithDecisionCache(-1, 0))
		require.ErrorIs(t, err, ErrInvalidCacheSize)
	})

	t.Run("负 TTL 报错", func(t *testing.T) {
		_, err := New([]Pattern{Literal("a")}, WithDecisionCache(16, -time.Second))
		require.ErrorIs(t, err, ErrInvalidCacheTTL)
	})

	t.Run("至少一个模式即成功", func(t *testing.T) {
		w, err := New([]Pattern{Literal("api.example.com")})
		require.NoError(t, err)
		require.NotNil(t, w)
	})
}

func TestWhitelistEligible(t *testing.T) {
	w, err := New([]Pattern{
		Literal("https://api.example.com"),
		Literal("internal.example.com"),
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"首个模式命中", "https://api.example.com/v1/x", true},
		{"第二个模式命中", "https://internal.example.com/health", true},
		{"无命中", "https://other.com/x", false},
		{"空 URL 恒为 false", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Eligible(tt.url))
		})
	}
}

func TestWhitelistIdempotent(t *testing.T) {
	w, err := New([]Pattern{Literal("api.example.com")})
	require.NoError(t, err)

	// 同一 (url, patterns) 输入重复求值结果必须一致
	for _, url := range []string{"https://api.example.com/x", "https://other.com/y", ""} {
		first := w.Eligible(url)
		second := w.Eligible(url)
		assert.Equal(t, first, second, "url=%q", url)
	}
}

func TestWhitelistShortCircuit(t *testing.T) {
	hit := &countingPattern{result: true}
	never := &countingPattern{result: false}

	w, err := New([]Pattern{hit, never})
	require.NoError(t, err)

	assert.True(t, w.Eligible("https://whatever/"))
	assert.Equal(t, 1, hit.calls)
	assert.Equal(t, 0, never.calls, "首个命中后不应继续求值")
}

func TestWhitelistDecisionCache(t *testing.T) {
	p := &countingPattern{result: true}
	w, err := New([]Pattern{p}, WithDecisionCache(16, time.Minute))
	require.NoError(t, err)

	assert.True(t, w.Eligible("https://a/"))
	assert.True(t, w.Eligible("https://a/"))
	assert.Equal(t, 1, p.calls, "第二次判定应命中缓存")

	// 缓存不改变语义
	assert.True(t, w.Eligible("https://b/"))
	assert.Equal(t, 2, p.calls)
}

func TestMustCompile(t *testing.T) {
	t.Run("合法配置不 panic", func(t *testing.T) {
		w := MustCompile([]string{"api.example.com"})
		assert.True(t, w.Eligible("https://api.example.com/x"))
	})

	t.Run("空配置 panic", func(t *testing.T) {
		assert.Panics(t, func() {
			MustCompile(nil)
		})
	})
}

func TestWhitelistPatterns(t *testing.T) {
	w := MustCompile([]string{"a", "b"})
	got := w.Patterns()
	require.Len(t, got, 2)

	// 返回副本，修改不影响内部状态
	got[0] = Literal("mutated")
	assert.Equal(t, "a", w.Patterns()[0].String())
}
