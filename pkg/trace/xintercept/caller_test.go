package xintercept_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/tracekit/pkg/trace/xhub"
	"github.com/omeyang/tracekit/pkg/trace/xintercept"
)

func TestNew(t *testing.T) {
	t.Run("nil hub 访问器报错", func(t *testing.T) {
		_, err := xintercept.New(xintercept.Config{
			Eligible: func(string) bool { return true },
		})
		require.ErrorIs(t, err, xintercept.ErrNilHubFunc)
	})

	t.Run("nil 判定函数报错", func(t *testing.T) {
		_, err := xintercept.New(xintercept.Config{
			CurrentHub: func() xhub.Hub { return nil },
		})
		require.ErrorIs(t, err, xintercept.ErrNilEligible)
	})
}

func TestWrapCallerInject(t *testing.T) {
	// 场景 A：白名单命中，Open 后 Send，请求携带宿主的追踪头
	hub := newFakeHub()
	ic := newInterceptor(t, hub)

	next := &fakeCaller{}
	c := ic.WrapCaller(next)

	require.NoError(t, c.Open("GET", "https://api.example.com/v1/x"))
	require.NoError(t, c.Send(nil))

	assert.Equal(t, hub.headers, next.headers)
	assert.Equal(t, "GET", next.openMethod)
	assert.Equal(t, "https://api.example.com/v1/x", next.openURL)

	// 注入发生在委托 Send 之前
	assert.Equal(t, []string{"open", "set_header", "set_header", "send"}, next.events)
}

func TestWrapCallerPassThrough(t *testing.T) {
	t.Run("场景 B：未命中白名单不注入", func(t *testing.T) {
		hub := newFakeHub()
		ic := newInterceptor(t, hub)

		next := &fakeCaller{}
		c := ic.WrapCaller(next)

		require.NoError(t, c.Open("GET", "https://other.com/x"))
		require.NoError(t, c.Send(nil))

		assert.Empty(t, next.headers)
		assert.Equal(t, []string{"open", "send"}, next.events)
		assert.Zero(t, hub.headerCalls, "未命中时不应向宿主索取追踪头")
	})

	t.Run("原始返回值不变", func(t *testing.T) {
		openErr := errors.New("open failed")
		sendErr := errors.New("send failed")
		next := &fakeCaller{openErr: openErr, sendErr: sendErr}
		c := newInterceptor(t, newFakeHub()).WrapCaller(next)

		assert.ErrorIs(t, c.Open("GET", "https://api.example.com/x"), openErr)
		assert.ErrorIs(t, c.Send(nil), sendErr)
	})

	t.Run("body 参数原样传递", func(t *testing.T) {
		next := &fakeCaller{}
		c := newInterceptor(t, newFakeHub()).WrapCaller(next)

		body := strings.NewReader("payload")
		require.NoError(t, c.Open("POST", "https://api.example.com/x"))
		require.NoError(t, c.Send(body))
		assert.Same(t, body, next.sentBody.(*strings.Reader))
	})

	t.Run("nil next 返回 nil", func(t *testing.T) {
		assert.Nil(t, newInterceptor(t, newFakeHub()).WrapCaller(nil))
	})
}

func TestWrapCallerSilentSkips(t *testing.T) {
	t.Run("未 Open 直接 Send", func(t *testing.T) {
		hub := newFakeHub()
		next := &fakeCaller{}
		c := newInterceptor(t, hub).WrapCaller(next)

		require.NoError(t, c.Send(nil))
		assert.Empty(t, next.headers)
		assert.Zero(t, hub.headerCalls)
	})

	t.Run("宿主上下文不可用", func(t *testing.T) {
		next := &fakeCaller{}
		c := newInterceptor(t, nil).WrapCaller(next)

		require.NoError(t, c.Open("GET", "https://api.example.com/x"))
		require.NoError(t, c.Send(nil))
		assert.Empty(t, next.headers)
	})

	t.Run("集成未注册", func(t *testing.T) {
		hub := newFakeHub()
		hub.integrations = nil

		next := &fakeCaller{}
		c := newInterceptor(t, hub).WrapCaller(next)

		require.NoError(t, c.Open("GET", "https://api.example.com/x"))
		require.NoError(t, c.Send(nil))
		assert.Empty(t, next.headers)
	})

	t.Run("缺少设头能力", func(t *testing.T) {
		next := &bareCaller{}
		c := newInterceptor(t, newFakeHub()).WrapCaller(next)

		require.NoError(t, c.Open("GET", "https://api.example.com/x"))
		require.NoError(t, c.Send(nil))
		assert.True(t, next.sent, "缺少能力时请求仍须放行")
	})
}

func TestWrapCallerRecordedURL(t *testing.T) {
	t.Run("重复 Open 覆盖记录的 URL", func(t *testing.T) {
		hub := newFakeHub()
		next := &fakeCaller{}
		c := newInterceptor(t, hub).WrapCaller(next)

		require.NoError(t, c.Open("GET", "https://api.example.com/first"))
		require.NoError(t, c.Open("GET", "https://other.com/second"))
		require.NoError(t, c.Send(nil))

		// 第二次 Open 指向白名单外，不注入
		assert.Empty(t, next.headers)
	})

	t.Run("多个在途请求互不干扰", func(t *testing.T) {
		hub := newFakeHub()
		ic := newInterceptor(t, hub)

		eligible := &fakeCaller{}
		other := &fakeCaller{}
		c1 := ic.WrapCaller(eligible)
		c2 := ic.WrapCaller(other)

		// 交错 Open：各装饰器持有自己的 URL，互不覆盖
		require.NoError(t, c1.Open("GET", "https://api.example.com/a"))
		require.NoError(t, c2.Open("GET", "https://other.com/b"))
		require.NoError(t, c1.Send(nil))
		require.NoError(t, c2.Send(nil))

		assert.Equal(t, hub.headers, eligible.headers)
		assert.Empty(t, other.headers)
	})
}
